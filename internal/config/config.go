package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DBPath      string
	TemplateDir string
	StaticDir   string

	SecureCookie bool
	SessionTTL   time.Duration

	// Seed admin account, created at startup when absent.
	AdminUser     string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment with defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "expenses.db"),
		TemplateDir: getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:   getEnv("STATIC_DIR", "web/static"),

		SecureCookie: getEnvBool("SECURE_COOKIE", false),
		SessionTTL:   time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*30)) * time.Hour,

		AdminUser:     getEnv("ADMIN_USER", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT must not be empty")
	}
	if cfg.DBPath == "" {
		return Config{}, fmt.Errorf("DB_PATH must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL_HOURS must be > 0")
	}
	if cfg.AdminUser != "" && cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD is required when ADMIN_USER is set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
