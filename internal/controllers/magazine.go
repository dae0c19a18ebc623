package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/models"
	"github.com/rahul4469/bizstart/internal/views"
)

// MagazineController serves published articles.
type MagazineController struct {
	articles  ArticleStore
	templates MagazineTemplates
	notFound  http.HandlerFunc
	log       *logger.Logger
}

type MagazineTemplates struct {
	List    *views.Template
	Article *views.Template
}

func NewMagazineController(articles ArticleStore, templates MagazineTemplates, notFound http.HandlerFunc, log *logger.Logger) *MagazineController {
	return &MagazineController{articles: articles, templates: templates, notFound: notFound, log: log}
}

type MagazineListData struct {
	Page       *models.ArticlePage
	Category   models.ArticleCategory
	Categories []models.ArticleCategory
	PrevHref   string
	NextHref   string
}

func magazineHref(category models.ArticleCategory, page int) string {
	v := url.Values{}
	if category != "" {
		v.Set("category", string(category))
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return "/magazine"
	}
	return "/magazine?" + v.Encode()
}

// GetList renders /magazine?category=&page=.
func (c *MagazineController) GetList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := models.ArticleCategory(q.Get("category"))
	if !category.Valid() {
		category = ""
	}
	pageNum, err := strconv.Atoi(q.Get("page"))
	if err != nil || pageNum < 1 {
		pageNum = 1
	}

	page, err := c.articles.ListPublished(r.Context(), category, pageNum)
	if err != nil {
		c.log.Error(r.Context(), "magazine list failed", err)
		http.Error(w, "Failed to load articles", http.StatusInternalServerError)
		return
	}

	list := MagazineListData{
		Page:       page,
		Category:   category,
		Categories: models.ArticleCategories(),
	}
	if page.Page > 1 {
		list.PrevHref = magazineHref(category, page.Page-1)
	}
	if page.HasNext {
		list.NextHref = magazineHref(category, page.Page+1)
	}

	title := "창업 매거진"
	if category != "" {
		title += " · " + category.Label()
	}
	c.templates.List.ExecuteHTTP(w, r, newPageData(w, r, title, list))
}

// GetArticle renders /magazine/{slug}.
func (c *MagazineController) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := c.articles.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, models.ErrArticleNotFound) {
		c.notFound(w, r)
		return
	}
	if err != nil {
		c.log.Error(r.Context(), "article load failed", err)
		http.Error(w, "Failed to load article", http.StatusInternalServerError)
		return
	}

	data := newPageData(w, r, article.Title, article)
	data.Description = article.Summary
	c.templates.Article.ExecuteHTTP(w, r, data)
}
