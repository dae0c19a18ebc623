package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahul4469/bizstart/internal/config"
	"github.com/rahul4469/bizstart/internal/controllers"
	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/market"
	"github.com/rahul4469/bizstart/internal/middleware"
	"github.com/rahul4469/bizstart/internal/notify"
	"github.com/rahul4469/bizstart/internal/views"
)

type dependencies struct {
	banners    controllers.BannerStore
	articles   controllers.ArticleStore
	inquiries  controllers.InquiryStore
	franchises controllers.FranchiseStore
	snapshots  controllers.SnapshotSource
	generator  *market.Generator
	notifier   notify.Notifier
	auth       *middleware.AdminAuth
	health     map[string]controllers.Pinger
}

func page(name string) *views.Template {
	return views.MustParseFS("pages/" + name + ".gohtml")
}

func newRouter(cfg *config.Config, log *logger.Logger, deps dependencies) http.Handler {
	// Setup Controllers ---------------
	staticC := controllers.NewStaticController(deps.banners, deps.articles, controllers.StaticTemplates{
		Home:     page("home"),
		NotFound: page("not_found"),
	}, log)
	healthC := controllers.NewHealthController(deps.health, log)
	marketC := controllers.NewMarketController(deps.snapshots, deps.generator, controllers.MarketTemplates{
		Dashboard: page("market"),
	}, log)
	mbtiC := controllers.NewMBTIController(controllers.MBTITemplates{
		Test:   page("mbti"),
		Result: page("mbti_result"),
	}, log)
	interiorC := controllers.NewInteriorController(controllers.InteriorTemplates{
		Estimator: page("interior"),
	})
	franchiseC := controllers.NewFranchiseController(deps.franchises, controllers.FranchiseTemplates{
		List:    page("franchises"),
		Compare: page("franchise_compare"),
	}, log)
	magazineC := controllers.NewMagazineController(deps.articles, controllers.MagazineTemplates{
		List:    page("magazine"),
		Article: page("article"),
	}, staticC.NotFound, log)
	inquiryC := controllers.NewInquiryController(deps.inquiries, deps.notifier, controllers.InquiryTemplates{
		Form: page("inquiry"),
	}, log)
	authC := controllers.NewAuthController(deps.auth, page("admin/login"), log)
	dashboardC := controllers.NewDashboardController(deps.inquiries, deps.banners, deps.articles, page("admin/dashboard"), log)
	adminC := controllers.NewAdminController(deps.banners, deps.inquiries, deps.articles, controllers.AdminTemplates{
		Banners:   page("admin/banners"),
		Inquiries: page("admin/inquiries"),
		Articles:  page("admin/articles"),
	}, log)

	// CSRF middleware
	csrfMw := csrf.Protect(
		[]byte(cfg.Security.CSRFSecret),
		csrf.Secure(cfg.Security.SecureCookies),
		csrf.Path("/"),
		csrf.TrustedOrigins(cfg.Security.TrustedOrigins),
		csrf.ErrorHandler(csrfFailure(log)),
	)

	// Setup router and routes
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID(log))
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Metrics)

	r.Get("/healthz", healthC.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// ---- JSON API ----
	// Stateless and cookie-free, so it sits outside the CSRF group.
	r.Route("/api", func(r chi.Router) {
		r.Get("/market/snapshot", marketC.GetSnapshot)
		r.Get("/mbti/questions", mbtiC.GetQuestions)
		r.Post("/mbti/result", mbtiC.PostResult)
		r.Get("/mbti/result", mbtiC.GetResult)
		r.Get("/interior/estimate", interiorC.GetEstimate)
	})

	// ---- Pages ----
	r.Group(func(r chi.Router) {
		if !cfg.Security.SecureCookies {
			r.Use(plaintextHTTP)
		}
		r.Use(csrfMw)
		r.Use(deps.auth.SetAdmin)

		r.Get("/", staticC.GetHome)
		r.Get("/market", marketC.GetDashboard)
		r.Get("/mbti", mbtiC.GetTest)
		r.Post("/mbti", mbtiC.PostTest)
		r.Get("/mbti/result", mbtiC.GetResultPage)
		r.Get("/interior", interiorC.GetEstimator)
		r.Get("/franchises", franchiseC.GetList)
		r.Get("/franchises/compare", franchiseC.GetCompare)
		r.Get("/magazine", magazineC.GetList)
		r.Get("/magazine/{slug}", magazineC.GetArticle)
		r.Get("/inquiry", inquiryC.GetForm)
		r.Post("/inquiry", inquiryC.PostForm)

		r.Get("/admin/login", authC.GetLogin)
		r.Post("/admin/login", authC.PostLogin)

		// ---- Admin ----
		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.auth.RequireAdmin)

			r.Get("/", dashboardC.GetDashboard)
			r.Post("/logout", authC.PostLogout)

			r.Get("/banners", adminC.GetBanners)
			r.Post("/banners", adminC.PostBanner)
			r.Post("/banners/{id}/toggle", adminC.PostBannerToggle)
			r.Post("/banners/{id}/delete", adminC.PostBannerDelete)

			r.Get("/inquiries", adminC.GetInquiries)
			r.Post("/inquiries/{id}/status", adminC.PostInquiryStatus)

			r.Get("/articles", adminC.GetArticles)
			r.Post("/articles", adminC.PostArticle)
			r.Post("/articles/{id}/publish", adminC.PostArticlePublish)
			r.Post("/articles/{id}/delete", adminC.PostArticleDelete)
		})
	})

	r.NotFound(staticC.NotFound)

	return r
}

// plaintextHTTP marks requests as plain HTTP so local development without
// TLS passes the CSRF origin check.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func csrfFailure(log *logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Warn(log.WithField(r.Context(), "path", r.URL.Path), "csrf.rejected", csrf.FailureReason(r))
		http.Error(w, "요청이 만료되었습니다. 페이지를 새로고침한 뒤 다시 시도해 주세요.", http.StatusForbidden)
	})
}
