package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppMode     string
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string

	// AuthTimeout bounds a single login attempt against the authentication service.
	AuthTimeout time.Duration
	// LoginScreenTTL is how long an idle login screen stays mounted.
	LoginScreenTTL time.Duration
	CookieSecure   bool
}

// Load builds Config from a .env file (when present) and the environment with sensible defaults.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	cfg := &Config{
		AppMode:        appMode,
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
		AuthTimeout:    getEnvDuration("AUTH_TIMEOUT", 10*time.Second),
		LoginScreenTTL: getEnvDuration("LOGIN_SCREEN_TTL", 30*time.Minute),
		CookieSecure:   getEnvBool("COOKIE_SECURE", appMode == "prod"),
	}

	if !cfg.IsDev() && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set when APP_MODE is 'prod'")
	}
	// a screen must outlive the attempt running on it
	if cfg.LoginScreenTTL < cfg.AuthTimeout {
		return nil, fmt.Errorf("LOGIN_SCREEN_TTL (%s) must not be shorter than AUTH_TIMEOUT (%s)", cfg.LoginScreenTTL, cfg.AuthTimeout)
	}
	return cfg, nil
}

// IsDev returns true if running in development mode.
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
