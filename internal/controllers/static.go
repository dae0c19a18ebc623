package controllers

import (
	"context"
	"net/http"

	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/models"
	"github.com/rahul4469/bizstart/internal/views"
)

// StaticController handles the home page and the 404 page.
type StaticController struct {
	banners   BannerStore
	articles  ArticleStore
	templates StaticTemplates
	log       *logger.Logger
}

// StaticTemplates holds templates for static pages.
type StaticTemplates struct {
	Home     *views.Template
	NotFound *views.Template
}

func NewStaticController(banners BannerStore, articles ArticleStore, templates StaticTemplates, log *logger.Logger) *StaticController {
	return &StaticController{
		banners:   banners,
		articles:  articles,
		templates: templates,
		log:       log,
	}
}

// HomeData holds data for the home page template.
type HomeData struct {
	Banners  []*models.Banner
	Articles []*models.Article
	Tools    []Tool
}

// Tool is a feature card on the home page.
type Tool struct {
	Href        string
	Title       string
	Description string
}

var homeTools = []Tool{
	{Href: "/market", Title: "상권 분석", Description: "행정동별 매출 지수, 점포 수, 유동인구를 한눈에 확인하세요."},
	{Href: "/mbti", Title: "창업 성향 테스트", Description: "12개 문항으로 나에게 맞는 업종을 추천받으세요."},
	{Href: "/interior", Title: "인테리어 견적", Description: "면적과 마감 등급만으로 예상 공사비를 계산합니다."},
	{Href: "/franchises", Title: "프랜차이즈 비교", Description: "가맹점 수, 창업 비용, 평균 매출을 나란히 비교하세요."},
}

const homeArticleCount = 3

// GetHome renders the home page. Content failures degrade to an empty
// section instead of an error page.
func (c *StaticController) GetHome(w http.ResponseWriter, r *http.Request) {
	home := HomeData{Tools: homeTools}

	banners, err := c.banners.Active(r.Context())
	if err != nil {
		c.log.Warn(r.Context(), "home banners unavailable", err)
	}
	home.Banners = banners

	page, err := c.articles.ListPublished(r.Context(), "", 1)
	if err != nil {
		c.log.Warn(r.Context(), "home articles unavailable", err)
	} else {
		home.Articles = page.Articles
		if len(home.Articles) > homeArticleCount {
			home.Articles = home.Articles[:homeArticleCount]
		}
	}

	data := newPageData(w, r, "창업의 모든 것, 비즈스타트", home)
	data.Description = "상권 분석부터 창업 성향 테스트, 인테리어 견적까지 예비 사장님을 위한 창업 도구"
	c.templates.Home.ExecuteHTTP(w, r, data)
}

// NotFound renders the 404 page.
func (c *StaticController) NotFound(w http.ResponseWriter, r *http.Request) {
	data := newPageData(w, r, "페이지를 찾을 수 없습니다", nil)
	c.templates.NotFound.ExecuteHTTPWithStatus(w, r, http.StatusNotFound, data)
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Health(ctx context.Context) error { return f(ctx) }

// HealthController reports dependency health for load balancers.
type HealthController struct {
	checks map[string]Pinger
	log    *logger.Logger
}

func NewHealthController(checks map[string]Pinger, log *logger.Logger) *HealthController {
	return &HealthController{checks: checks, log: log}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheck returns 200 when every dependency answers and 503 otherwise.
func (c *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(c.checks))}
	status := http.StatusOK
	for name, p := range c.checks {
		if err := p.Health(r.Context()); err != nil {
			c.log.Warn(c.log.WithField(r.Context(), "check", name), "health check failed", err)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	writeJSON(w, status, resp)
}
