package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/dcallow/storefront/internal/config"
	"github.com/dcallow/storefront/internal/handlers"
	"github.com/dcallow/storefront/internal/middleware"
	"github.com/dcallow/storefront/internal/repo"
	"github.com/dcallow/storefront/internal/session"
)

// Limiters groups the per-IP rate limiters so the router and the maintenance
// scheduler share the same buckets.
type Limiters struct {
	Auth *middleware.IPRateLimiter
	API  *middleware.IPRateLimiter
}

func newLimiters() *Limiters {
	return &Limiters{
		Auth: middleware.AuthRateLimiter(),
		API:  middleware.APIRateLimiter(),
	}
}

func newRouter(
	cfg config.Config,
	gdb *gorm.DB,
	pages *handlers.PageHandler,
	api *handlers.APIHandler,
	sessions *session.Manager,
	users *repo.UserRepo,
	limiters *Limiters,
) chi.Router {
	hsts := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Visitor)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(hsts))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(middleware.CurrentUser(sessions, users))

	// Operational endpoints
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := gdb.DB()
		if err != nil || sqlDB.PingContext(r.Context()) != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Pages
	r.Get("/", pages.Index)
	r.Get("/index", pages.Index)
	r.Get("/index/{header}", pages.Index)
	r.Get("/checkout", pages.Checkout)
	r.Get("/title", pages.TitleForm)
	r.Post("/title", pages.TitleSubmit)
	r.Get("/login", pages.LoginForm)
	r.With(limiters.Auth.Middleware).Post("/login", pages.LoginSubmit)
	r.Get("/register", pages.RegisterForm)
	r.With(limiters.Auth.Middleware).Post("/register", pages.RegisterSubmit)
	r.Get("/contact", pages.ContactForm)
	r.Post("/contact", pages.ContactSubmit)
	r.Get("/profile/{username}", pages.Profile)
	r.Post("/profile/{username}", pages.ProfilePost)
	r.Get("/logout", pages.Logout)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
		r.Use(limiters.API.Middleware)
		r.Get("/posts/retrieve", api.RetrievePosts)
		r.Post("/posts/save", api.SavePost)
	})

	return r
}
