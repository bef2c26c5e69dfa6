package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Version is the reported application version.
const Version = "0.1.0"

// Environment names recognized by the config.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// devSecret substitutes for a missing signing key outside production.
const devSecret = "dev-secret-change-me"

// weakSecrets are placeholder values rejected in production-like environments.
var weakSecrets = []string{"change-me", "secret", "password", "dev-secret"}

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	DatabaseURL    string
	JWTSecret      string
	JWTAlgorithm   string
	AccessTokenTTL int // minutes
	AllowedOrigins []string
	Environment    string
	Debug          bool
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	UploadDir      string
}

// Load builds Config from environment with sensible defaults. A .env file is
// read first when present.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite://unimarket.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTAlgorithm:   getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenTTL: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		Environment:    getEnv("ENVIRONMENT", EnvDevelopment),
		Debug:          getEnv("DEBUG", "false") == "true",
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
	}
}

// IsProduction reports whether the config targets a production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate enforces startup invariants. In production and staging the signing
// key must be configured, at least 32 characters, and not a known placeholder;
// production additionally forbids debug mode and file-based databases.
func (c *Config) Validate() error {
	if c.JWTAlgorithm != "HS256" {
		return fmt.Errorf("unsupported JWT algorithm %q", c.JWTAlgorithm)
	}

	if c.Environment != EnvDevelopment && c.Environment != EnvStaging && c.Environment != EnvProduction {
		return fmt.Errorf("unknown environment %q", c.Environment)
	}

	productionLike := c.Environment == EnvProduction || c.Environment == EnvStaging
	if c.JWTSecret == "" {
		if productionLike {
			return fmt.Errorf("JWT_SECRET must be set in %s", c.Environment)
		}
		c.JWTSecret = devSecret
	} else if productionLike {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters")
		}
		lower := strings.ToLower(c.JWTSecret)
		for _, weak := range weakSecrets {
			if strings.Contains(lower, weak) {
				return fmt.Errorf("JWT_SECRET is a known-weak placeholder")
			}
		}
	}

	if c.IsProduction() {
		if c.Debug {
			return fmt.Errorf("debug mode is not allowed in production")
		}
		if strings.HasPrefix(c.DatabaseURL, "sqlite://") {
			return fmt.Errorf("sqlite is not allowed in production")
		}
	}

	return nil
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

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
