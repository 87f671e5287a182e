package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/dcallow/storefront/internal/config"
	"github.com/dcallow/storefront/internal/scheduler"
)

func main() {
	configFile := flag.String("config", "", "optional .env file to load (environment variables take precedence)")
	flag.Parse()

	if *configFile != "" {
		if err := godotenv.Load(*configFile); err != nil {
			log.Printf("warning: could not load %s: %v", *configFile, err)
		}
	}

	container, err := buildContainer()
	if err != nil {
		log.Fatalf("build container: %v", err)
	}

	err = container.Invoke(func(cfg config.Config, r chi.Router, maint *scheduler.Maintenance) error {
		setupLogging(cfg.LogFormat)

		if err := maint.Start(cfg.MaintenanceCron); err != nil {
			return err
		}
		defer maint.Stop()

		addr := ":" + cfg.Port
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			slog.Info("listening", "addr", addr, "tls", true)
			return http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
		}
		slog.Info("listening", "addr", addr, "tls", false)
		return http.ListenAndServe(addr, r)
	})
	if err != nil {
		log.Fatal(err)
	}
}

func setupLogging(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
