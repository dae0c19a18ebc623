package controllers

import (
	"net/http"

	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/models"
	"github.com/rahul4469/bizstart/internal/views"
)

// DashboardController handles the admin dashboard.
type DashboardController struct {
	inquiries InquiryStore
	banners   BannerStore
	articles  ArticleStore
	template  *views.Template
	log       *logger.Logger
}

func NewDashboardController(inquiries InquiryStore, banners BannerStore, articles ArticleStore, template *views.Template, log *logger.Logger) *DashboardController {
	return &DashboardController{
		inquiries: inquiries,
		banners:   banners,
		articles:  articles,
		template:  template,
		log:       log,
	}
}

// StatusCount is one tile of the inquiry summary.
type StatusCount struct {
	Status models.InquiryStatus
	Count  int
}

// DashboardData holds data for the dashboard template.
type DashboardData struct {
	StatusCounts   []StatusCount
	TotalInquiries int
	Recent         []*models.Inquiry
	BannerCount    int
	ArticleCount   int
}

const dashboardRecent = 5

// GetDashboard renders /admin.
func (c *DashboardController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := c.inquiries.CountByStatus(ctx)
	if err != nil {
		c.log.Error(ctx, "inquiry counts failed", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	dash := DashboardData{}
	for _, s := range models.InquiryStatuses() {
		dash.StatusCounts = append(dash.StatusCounts, StatusCount{Status: s, Count: counts[s]})
		dash.TotalInquiries += counts[s]
	}

	recent, err := c.inquiries.List(ctx, models.InquiryNew, dashboardRecent)
	if err != nil {
		c.log.Warn(ctx, "recent inquiries unavailable", err)
	}
	dash.Recent = recent

	if banners, err := c.banners.All(ctx); err == nil {
		dash.BannerCount = len(banners)
	}
	if articles, err := c.articles.All(ctx); err == nil {
		dash.ArticleCount = len(articles)
	}

	c.template.ExecuteHTTP(w, r, newPageData(w, r, "관리자 대시보드", dash))
}
