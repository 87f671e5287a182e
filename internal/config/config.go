package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// DBDriver selects the persistence backend: "sqlite" (default) or "postgres".
	DBDriver string

	// SQLitePath is the sqlite database file (default "storefront.db").
	SQLitePath string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// SessionHours is the session cookie lifetime in hours (default 24). Set via SESSION_HOURS.
	SessionHours int

	// RememberDays is the lifetime in days of a "remember me" session (default 30).
	RememberDays int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the server listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// MaintenanceCron is the cron expression for the background maintenance job
	// (default every 10 minutes). Set MAINTENANCE_CRON=off to disable.
	MaintenanceCron string

	// CORSAllowedOrigins is a list of origins allowed for CORS on /api routes
	// (comma-separated via CORS_ALLOWED_ORIGINS). When empty, no CORS headers are sent.
	CORSAllowedOrigins []string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		SQLitePath: getEnv("SQLITE_PATH", "storefront.db"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "storefront"),
		DBUser: getEnv("DB_USER", "storefront"),
		DBPass: getEnv("DB_PASS", "storefront"),

		JWTSecret: getEnv("JWT_SECRET", "supersecretkey"),
		Env:       getEnv("ENV", "dev"),

		SessionHours: getEnvInt("SESSION_HOURS", 24),
		RememberDays: getEnvInt("REMEMBER_DAYS", 30),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		MaintenanceCron: getEnv("MAINTENANCE_CRON", "*/10 * * * *"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
