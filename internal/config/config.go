package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port            string
	DatabaseDriver  string // "sqlite" or "postgres"
	DatabaseDSN     string
	DBMaxOpenConns  int
	JWTSecret       string
	TokenTTL        time.Duration
	SessionSecret   string
	SessionName     string
	CookieSecure    bool
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Load returns the application configuration. Values from a local .env file
// are applied first; variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseDriver:  strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
		DatabaseDSN:     getEnv("DATABASE_DSN", "newsboard.db"),
		DBMaxOpenConns:  getEnvInt("DB_MAX_OPEN_CONNS", 10),
		JWTSecret:       getEnv("JWT_SECRET", "change-me-jwt-secret"),
		TokenTTL:        getEnvDuration("TOKEN_TTL", 24*time.Hour),
		SessionSecret:   getEnv("SESSION_SECRET", "change-me-session-secret"),
		SessionName:     getEnv("SESSION_NAME", "newsboard_session"),
		CookieSecure:    getEnv("COOKIE_SECURE", "false") == "true",
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "")),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
