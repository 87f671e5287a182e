package main

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"go.uber.org/dig"
	"gorm.io/gorm"

	"github.com/dcallow/storefront/internal/config"
	"github.com/dcallow/storefront/internal/db"
	"github.com/dcallow/storefront/internal/handlers"
	"github.com/dcallow/storefront/internal/repo"
	"github.com/dcallow/storefront/internal/scheduler"
	"github.com/dcallow/storefront/internal/session"
)

func provideConfig() (config.Config, error) {
	cfg := config.Load()
	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		return config.Config{}, fmt.Errorf("JWT_SECRET must be set in prod")
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return config.Config{}, fmt.Errorf("unknown DB_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}
	return cfg, nil
}

func provideDB(cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "postgres" {
		return db.OpenPostgres(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	}
	return db.OpenSQLite(cfg.SQLitePath)
}

func provideSessionManager(cfg config.Config) *session.Manager {
	m := session.NewManager([]byte(cfg.JWTSecret), cfg.SessionHours, cfg.RememberDays)
	m.Secure = cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
	return m
}

func providePageHandler(
	users *repo.UserRepo,
	posts *repo.PostRepo,
	contacts *repo.ContactRepo,
	sessions *session.Manager,
	render *handlers.Renderer,
) *handlers.PageHandler {
	return &handlers.PageHandler{
		Users:    users,
		Posts:    posts,
		Contacts: contacts,
		Sessions: sessions,
		Render:   render,
	}
}

func provideAPIHandler(users *repo.UserRepo, posts *repo.PostRepo) *handlers.APIHandler {
	return &handlers.APIHandler{Users: users, Posts: posts}
}

func provideMaintenance(
	users *repo.UserRepo,
	posts *repo.PostRepo,
	contacts *repo.ContactRepo,
	limiters *Limiters,
) *scheduler.Maintenance {
	return scheduler.NewMaintenance(users, posts, contacts, limiters.Auth, limiters.API)
}

func provideRouter(
	cfg config.Config,
	gdb *gorm.DB,
	pages *handlers.PageHandler,
	api *handlers.APIHandler,
	sessions *session.Manager,
	users *repo.UserRepo,
	limiters *Limiters,
) chi.Router {
	return newRouter(cfg, gdb, pages, api, sessions, users, limiters)
}

func buildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []interface{}{
		provideConfig,
		provideDB,
		provideSessionManager,
		repo.NewUserRepo,
		repo.NewPostRepo,
		repo.NewContactRepo,
		handlers.NewRenderer,
		providePageHandler,
		provideAPIHandler,
		newLimiters,
		provideMaintenance,
		provideRouter,
	}
	for _, p := range providers {
		if err := container.Provide(p); err != nil {
			return nil, fmt.Errorf("provide %T: %w", p, err)
		}
	}

	return container, nil
}
