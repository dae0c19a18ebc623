package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/models"
	"github.com/rahul4469/bizstart/internal/views"
)

// AdminController manages banners, inquiries and magazine articles.
type AdminController struct {
	banners   BannerStore
	inquiries InquiryStore
	articles  ArticleStore
	templates AdminTemplates
	log       *logger.Logger
}

type AdminTemplates struct {
	Banners   *views.Template
	Inquiries *views.Template
	Articles  *views.Template
}

func NewAdminController(banners BannerStore, inquiries InquiryStore, articles ArticleStore, templates AdminTemplates, log *logger.Logger) *AdminController {
	return &AdminController{
		banners:   banners,
		inquiries: inquiries,
		articles:  articles,
		templates: templates,
		log:       log,
	}
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// Banners

type AdminBannersData struct {
	Banners []*models.Banner
	Form    models.BannerInput
}

func (c *AdminController) renderBanners(w http.ResponseWriter, r *http.Request, status int, form models.BannerInput, formErr error) {
	banners, err := c.banners.All(r.Context())
	if err != nil {
		c.log.Error(r.Context(), "banner list failed", err)
		http.Error(w, "Failed to load banners", http.StatusInternalServerError)
		return
	}
	data := newPageData(w, r, "배너 관리", AdminBannersData{Banners: banners, Form: form})
	if formErr != nil {
		data.Error = "입력 내용을 확인해 주세요."
		data.FieldErrors = fieldErrors(formErr)
	}
	c.templates.Banners.ExecuteHTTPWithStatus(w, r, status, data)
}

func (c *AdminController) GetBanners(w http.ResponseWriter, r *http.Request) {
	c.renderBanners(w, r, http.StatusOK, models.BannerInput{}, nil)
}

func (c *AdminController) PostBanner(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := models.BannerInput{
		Title:    strings.TrimSpace(r.PostForm.Get("title")),
		ImageURL: strings.TrimSpace(r.PostForm.Get("image_url")),
		LinkURL:  strings.TrimSpace(r.PostForm.Get("link_url")),
	}
	if raw := strings.TrimSpace(r.PostForm.Get("sort_order")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			n = -1
		}
		form.SortOrder = n
	}

	if err := validate.Struct(form); err != nil {
		c.renderBanners(w, r, http.StatusUnprocessableEntity, form, err)
		return
	}
	banner, err := c.banners.Create(r.Context(), form)
	if err != nil {
		c.log.Error(r.Context(), "banner create failed", err)
		http.Error(w, "Failed to create banner", http.StatusInternalServerError)
		return
	}
	c.log.Info(c.log.WithField(r.Context(), "banner_id", banner.ID), "admin.banner.created")
	redirectWithFlash(w, r, "/admin/banners", flashSuccess, "배너를 추가했습니다.")
}

func (c *AdminController) PostBannerToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	active, err := c.banners.Toggle(r.Context(), id)
	if errors.Is(err, models.ErrBannerNotFound) {
		redirectWithFlash(w, r, "/admin/banners", flashError, "배너를 찾을 수 없습니다.")
		return
	}
	if err != nil {
		c.log.Error(r.Context(), "banner toggle failed", err)
		http.Error(w, "Failed to update banner", http.StatusInternalServerError)
		return
	}
	msg := "배너를 숨겼습니다."
	if active {
		msg = "배너를 노출합니다."
	}
	redirectWithFlash(w, r, "/admin/banners", flashSuccess, msg)
}

func (c *AdminController) PostBannerDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	err := c.banners.Delete(r.Context(), id)
	if errors.Is(err, models.ErrBannerNotFound) {
		redirectWithFlash(w, r, "/admin/banners", flashError, "배너를 찾을 수 없습니다.")
		return
	}
	if err != nil {
		c.log.Error(r.Context(), "banner delete failed", err)
		http.Error(w, "Failed to delete banner", http.StatusInternalServerError)
		return
	}
	c.log.Info(c.log.WithField(r.Context(), "banner_id", id), "admin.banner.deleted")
	redirectWithFlash(w, r, "/admin/banners", flashSuccess, "배너를 삭제했습니다.")
}

// Inquiries

type AdminInquiriesData struct {
	Inquiries []*models.Inquiry
	Status    models.InquiryStatus
	Statuses  []models.InquiryStatus
}

const adminInquiryLimit = 100

func inquiriesHref(status models.InquiryStatus) string {
	if status == "" {
		return "/admin/inquiries"
	}
	return "/admin/inquiries?status=" + string(status)
}

// GetInquiries renders /admin/inquiries?status=.
func (c *AdminController) GetInquiries(w http.ResponseWriter, r *http.Request) {
	status := models.InquiryStatus(r.URL.Query().Get("status"))
	if !status.Valid() {
		status = ""
	}
	list, err := c.inquiries.List(r.Context(), status, adminInquiryLimit)
	if err != nil {
		c.log.Error(r.Context(), "inquiry list failed", err)
		http.Error(w, "Failed to load inquiries", http.StatusInternalServerError)
		return
	}
	c.templates.Inquiries.ExecuteHTTP(w, r, newPageData(w, r, "상담 신청 관리", AdminInquiriesData{
		Inquiries: list,
		Status:    status,
		Statuses:  models.InquiryStatuses(),
	}))
}

// PostInquiryStatus moves an inquiry to the posted status and returns to
// the filtered list it came from.
func (c *AdminController) PostInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	back := models.InquiryStatus(r.PostForm.Get("filter"))
	if !back.Valid() {
		back = ""
	}
	target := inquiriesHref(back)

	next := models.InquiryStatus(r.PostForm.Get("status"))
	if !next.Valid() {
		redirectWithFlash(w, r, target, flashError, "알 수 없는 상태입니다.")
		return
	}

	err := c.inquiries.UpdateStatus(r.Context(), id, next)
	switch {
	case errors.Is(err, models.ErrInquiryNotFound):
		redirectWithFlash(w, r, target, flashError, "상담 신청을 찾을 수 없습니다.")
	case errors.Is(err, models.ErrInvalidTransition):
		redirectWithFlash(w, r, target, flashError, "현재 상태에서 '"+next.Label()+"'(으)로 변경할 수 없습니다.")
	case err != nil:
		c.log.Error(r.Context(), "inquiry status update failed", err)
		http.Error(w, "Failed to update inquiry", http.StatusInternalServerError)
	default:
		c.log.Info(c.log.WithFields(r.Context(), map[string]any{"inquiry_id": id, "status": next}), "admin.inquiry.status")
		redirectWithFlash(w, r, target, flashSuccess, "상태를 '"+next.Label()+"'(으)로 변경했습니다.")
	}
}

// Articles

type AdminArticlesData struct {
	Articles   []*models.Article
	Form       models.ArticleInput
	Categories []models.ArticleCategory
}

func (c *AdminController) renderArticles(w http.ResponseWriter, r *http.Request, status int, form models.ArticleInput, errs map[string]string) {
	articles, err := c.articles.All(r.Context())
	if err != nil {
		c.log.Error(r.Context(), "article list failed", err)
		http.Error(w, "Failed to load articles", http.StatusInternalServerError)
		return
	}
	data := newPageData(w, r, "매거진 관리", AdminArticlesData{
		Articles:   articles,
		Form:       form,
		Categories: models.ArticleCategories(),
	})
	if len(errs) > 0 {
		data.Error = "입력 내용을 확인해 주세요."
		data.FieldErrors = errs
	}
	c.templates.Articles.ExecuteHTTPWithStatus(w, r, status, data)
}

func (c *AdminController) GetArticles(w http.ResponseWriter, r *http.Request) {
	c.renderArticles(w, r, http.StatusOK, models.ArticleInput{}, nil)
}

// PostArticle creates a draft. Publishing is a separate step.
func (c *AdminController) PostArticle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	form := models.ArticleInput{
		Slug:     strings.ToLower(strings.TrimSpace(r.PostForm.Get("slug"))),
		Title:    strings.TrimSpace(r.PostForm.Get("title")),
		Summary:  strings.TrimSpace(r.PostForm.Get("summary")),
		Body:     strings.TrimSpace(r.PostForm.Get("body")),
		Category: r.PostForm.Get("category"),
		CoverURL: strings.TrimSpace(r.PostForm.Get("cover_url")),
	}

	errs := map[string]string{}
	if err := validate.Struct(form); err != nil {
		for field, msg := range fieldErrors(err) {
			errs[field] = msg
		}
	}
	if _, bad := errs["slug"]; !bad && !models.ValidSlug(form.Slug) {
		errs["slug"] = "영문 소문자, 숫자, 하이픈만 사용할 수 있습니다."
	}
	if len(errs) > 0 {
		c.renderArticles(w, r, http.StatusUnprocessableEntity, form, errs)
		return
	}

	article, err := c.articles.Create(r.Context(), form)
	if errors.Is(err, models.ErrSlugTaken) {
		c.renderArticles(w, r, http.StatusUnprocessableEntity, form, map[string]string{"slug": "이미 사용 중인 주소입니다."})
		return
	}
	if err != nil {
		c.log.Error(r.Context(), "article create failed", err)
		http.Error(w, "Failed to create article", http.StatusInternalServerError)
		return
	}
	c.log.Info(c.log.WithField(r.Context(), "article_id", article.ID), "admin.article.created")
	redirectWithFlash(w, r, "/admin/articles", flashSuccess, "초안을 저장했습니다.")
}

// PostArticlePublish handles published=true|false.
func (c *AdminController) PostArticlePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	published, err := strconv.ParseBool(r.PostForm.Get("published"))
	if err != nil {
		redirectWithFlash(w, r, "/admin/articles", flashError, "잘못된 요청입니다.")
		return
	}

	err = c.articles.SetPublished(r.Context(), id, published)
	if errors.Is(err, models.ErrArticleNotFound) {
		redirectWithFlash(w, r, "/admin/articles", flashError, "글을 찾을 수 없습니다.")
		return
	}
	if err != nil {
		c.log.Error(r.Context(), "article publish failed", err)
		http.Error(w, "Failed to update article", http.StatusInternalServerError)
		return
	}
	msg := "글을 비공개로 전환했습니다."
	if published {
		msg = "글을 발행했습니다."
	}
	redirectWithFlash(w, r, "/admin/articles", flashSuccess, msg)
}

func (c *AdminController) PostArticleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	err := c.articles.Delete(r.Context(), id)
	if errors.Is(err, models.ErrArticleNotFound) {
		redirectWithFlash(w, r, "/admin/articles", flashError, "글을 찾을 수 없습니다.")
		return
	}
	if err != nil {
		c.log.Error(r.Context(), "article delete failed", err)
		http.Error(w, "Failed to delete article", http.StatusInternalServerError)
		return
	}
	c.log.Info(c.log.WithField(r.Context(), "article_id", id), "admin.article.deleted")
	redirectWithFlash(w, r, "/admin/articles", flashSuccess, "글을 삭제했습니다.")
}
