// Package config resolves orbitrest settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/orbitrest/internal/llm"
	"github.com/abhisek/orbitrest/internal/logging"
)

// Config holds process-wide settings.
type Config struct {
	// DB is a SQLite path or a postgres:// DSN. Empty means
	// store.DefaultDBPath.
	DB string

	// Addr is the HTTP listen address.
	Addr string

	// JWTSecret signs session tokens. Required by serve.
	JWTSecret string
	TokenTTL  time.Duration

	// SecureCookie marks the session cookie Secure; enable behind HTTPS.
	SecureCookie bool

	// AdminUsers may create quiz questions over the API.
	AdminUsers []string

	// TrustedProxies may set X-Forwarded-For.
	TrustedProxies []string

	// RedisURL enables rate limiting of the auth routes when set.
	RedisURL string

	// AuthRateLimit is the number of auth requests a client IP may make
	// per minute.
	AuthRateLimit int

	LogLevel  string
	LogFormat string // "text" or "json"

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	LLM llm.Config
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Addr:          ":5000",
		TokenTTL:      30 * 24 * time.Hour,
		AuthRateLimit: 20,
		LogLevel:      "info",
		LogFormat:     "text",
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  30 * time.Second,
		LLM:           llm.DefaultConfig(),
	}
}

// Load reads envFile into the process environment when it exists, without
// overriding variables that are already set, then calls FromEnv.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from ORBITREST_* variables over the defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv("ORBITREST_DB"); v != "" {
		cfg.DB = v
	}
	if v := getenv("ORBITREST_ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.JWTSecret = getenv("ORBITREST_JWT_SECRET")
	if v := getenv("ORBITREST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("ORBITREST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := getenv("ORBITREST_SECURE_COOKIE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("ORBITREST_SECURE_COOKIE: %w", err)
		}
		cfg.SecureCookie = b
	}
	cfg.AdminUsers = splitList(getenv("ORBITREST_ADMIN_USERS"))
	cfg.TrustedProxies = splitList(getenv("ORBITREST_TRUSTED_PROXIES"))
	cfg.RedisURL = getenv("ORBITREST_REDIS_URL")
	if v := getenv("ORBITREST_AUTH_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("ORBITREST_AUTH_RATE_LIMIT: %w", err)
		}
		cfg.AuthRateLimit = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"ORBITREST_TOKEN_TTL", &cfg.TokenTTL},
		{"ORBITREST_READ_TIMEOUT", &cfg.ReadTimeout},
		{"ORBITREST_WRITE_TIMEOUT", &cfg.WriteTimeout},
	}
	for _, d := range durations {
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	cfg.LLM = llm.ConfigFromEnv(getenv)
	return cfg, nil
}

// Validate checks values that every command depends on. The JWT secret
// and LLM keys are checked by the commands that need them.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("ORBITREST_LOG_LEVEL: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("ORBITREST_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("ORBITREST_TOKEN_TTL must be positive")
	}
	if c.RedisURL != "" && c.AuthRateLimit < 1 {
		return fmt.Errorf("ORBITREST_AUTH_RATE_LIMIT must be at least 1")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	return nil
}

// IsAdmin reports whether username is listed in AdminUsers.
func (c Config) IsAdmin(username string) bool {
	for _, u := range c.AdminUsers {
		if u == username {
			return true
		}
	}
	return false
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
