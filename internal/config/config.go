package config

import (
	"os"
)

// Config is the environment-derived configuration for the promptbase hosts.
type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL
	CORSOrigins     string
	TablePrefix     string
}

// Load reads configuration from the environment with dev-friendly defaults.
// An empty SupabaseDBURL selects local mode (in-memory store, header auth).
func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	var jwksURL string
	if supabaseURL != "" {
		jwksURL = supabaseURL + "/auth/v1/.well-known/jwks.json"
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		SupabaseURL:     supabaseURL,
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL: jwksURL,
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     getTablePrefix(env),
	}
}

// getTablePrefix returns the table prefix for the environment, overridable
// via TABLE_PREFIX.
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
