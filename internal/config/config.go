package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultSessionSecret is only acceptable outside prod.
const DefaultSessionSecret = "super-secret-key"

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	// Port is the preferred listen port; if busy, Port+1 is tried.
	Port int

	// DBPath is the SQLite file holding the users and todos tables.
	DBPath string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	SessionSecret string

	// SessionTTLHours is the absolute session lifetime in hours (default 24).
	SessionTTLHours int

	// SessionStore is "memory" (default) or "redis".
	SessionStore string
	RedisAddr    string

	// SessionPurgeCron is the cron spec for dropping expired in-memory sessions.
	SessionPurgeCron string

	// CookieSecure marks the session cookie Secure; set when served over HTTPS.
	CookieSecure bool

	// Env is "dev" (default) or "prod". When "prod", SESSION_SECRET must be set and not the default.
	Env string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string
}

func Load() Config {
	return Config{
		Port: getEnvInt("PORT", 3000),

		DBPath:         getEnv("DB_PATH", "./data.db"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		SessionSecret:    getEnv("SESSION_SECRET", DefaultSessionSecret),
		SessionTTLHours:  getEnvInt("SESSION_TTL_HOURS", 24),
		SessionStore:     strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		SessionPurgeCron: getEnv("SESSION_PURGE_CRON", "@every 10m"),
		CookieSecure:     getEnvBool("COOKIE_SECURE", false),

		Env:       getEnv("ENV", "dev"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate rejects settings the server must not start with.
func (c Config) Validate() error {
	var errs []error
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}
	if c.Env == "prod" && c.SessionSecret == DefaultSessionSecret {
		errs = append(errs, errors.New("SESSION_SECRET must be changed from the default in prod"))
	}
	if c.SessionStore != SessionStoreMemory && c.SessionStore != SessionStoreRedis {
		errs = append(errs, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreRedis, c.SessionStore))
	}
	if c.Port <= 0 || c.Port >= 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	return errors.Join(errs...)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
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

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
