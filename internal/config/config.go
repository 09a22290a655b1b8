// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// TokenSecret is the HMAC key used to sign and verify bearer tokens.
	// Required; must be at least 16 bytes.
	TokenSecret string

	// SupabaseURL is the base URL of the object storage service
	// (e.g. https://xyz.supabase.co). Required.
	SupabaseURL string

	// SupabaseBucket is the storage bucket uploads are written to. Required.
	SupabaseBucket string

	// SupabaseServiceKey authenticates the server against the storage
	// service's write endpoint. Required.
	SupabaseServiceKey string

	// MaxUploadBytes caps incoming request bodies, which bounds file upload
	// size. Defaults to 10 MiB.
	MaxUploadBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first if present, so local
// development does not need exported shell variables.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Ignore the error: a missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string
	for _, v := range []struct {
		key  string
		dest *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"TOKEN_SECRET", &cfg.TokenSecret},
		{"SUPABASE_URL", &cfg.SupabaseURL},
		{"SUPABASE_BUCKET", &cfg.SupabaseBucket},
		{"SUPABASE_SERVICE_KEY", &cfg.SupabaseServiceKey},
	} {
		*v.dest = os.Getenv(v.key)
		if *v.dest == "" {
			missing = append(missing, v.key)
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if len(cfg.TokenSecret) < 16 {
		return Config{}, fmt.Errorf("TOKEN_SECRET must be at least 16 bytes")
	}

	cfg.MaxUploadBytes = 10 << 20
	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer, got %q", raw)
		}
		cfg.MaxUploadBytes = n
	}

	// Strip a trailing slash so URL building never produces double slashes.
	cfg.SupabaseURL = strings.TrimRight(cfg.SupabaseURL, "/")

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
