// Package config loads the process-level settings from the environment.
// Adapter-specific settings (database, redis, object stores) are loaded by their own packages.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// BackendMode selects which backend.Client implementation is built.
type BackendMode string

const (
	// BackendHosted talks to a hosted backend over HTTP.
	BackendHosted BackendMode = "hosted"
	// BackendLocal assembles the backend from local auth, a row store, and an object store.
	BackendLocal BackendMode = "local"
)

// Row and object store choices for BackendLocal.
const (
	RowStoreGorm  = "gorm"
	RowStoreMongo = "mongo"

	ObjectStoreMinio      = "minio"
	ObjectStoreCloudinary = "cloudinary"
)

// Config holds the application settings.
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string // origin used in share links
	Backend       BackendMode
	RowStore      string
	ObjectStore   string

	JWTSecret     string
	JWTExpiration time.Duration
	SecureCookie  bool

	CORSOrigins []string

	// ViewStateTTL bounds how long per-user list snapshots are kept.
	ViewStateTTL time.Duration
	// LoginRateLimit is the number of auth attempts per client per LoginRateWindow.
	LoginRateLimit  int
	LoginRateWindow time.Duration
	// SessionPurgeInterval is how often expired local sessions are deleted. 0 disables it.
	SessionPurgeInterval time.Duration
}

// LoadConfig reads the configuration. Explicit env vars win over .env, which wins over defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("APP_ENV", "development"),
		PublicBaseURL:        strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		Backend:              BackendMode(strings.ToLower(getEnv("BACKEND_MODE", string(BackendLocal)))),
		RowStore:             strings.ToLower(getEnv("ROW_STORE", RowStoreGorm)),
		ObjectStore:          strings.ToLower(getEnv("OBJECT_STORE", ObjectStoreMinio)),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTExpiration:        ParseDuration("JWT_EXPIRATION", time.Hour),
		SecureCookie:         ParseBool("COOKIE_SECURE", false),
		CORSOrigins:          splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		ViewStateTTL:         ParseDuration("VIEW_STATE_TTL", 30*time.Minute),
		LoginRateLimit:       ParseInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:      ParseDuration("LOGIN_RATE_WINDOW", time.Minute),
		SessionPurgeInterval: ParseDuration("SESSION_PURGE_INTERVAL", time.Hour),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendHosted:
		return nil
	case BackendLocal:
	default:
		return fmt.Errorf("unsupported BACKEND_MODE %q", c.Backend)
	}
	if c.RowStore != RowStoreGorm && c.RowStore != RowStoreMongo {
		return fmt.Errorf("unsupported ROW_STORE %q", c.RowStore)
	}
	if c.ObjectStore != ObjectStoreMinio && c.ObjectStore != ObjectStoreCloudinary {
		return fmt.Errorf("unsupported OBJECT_STORE %q", c.ObjectStore)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when BACKEND_MODE=%s", BackendLocal)
	}
	return nil
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool { return c.Env == "production" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean in environment", "key", key, "value", v)
			return def
		}
		return b
	}
	return def
}

// ParseInt reads an env var as int with default.
func ParseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer in environment", "key", key, "value", v)
			return def
		}
		return n
	}
	return def
}

// ParseDuration reads an env var as a time.Duration ("90s", "1h") with default.
func ParseDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration in environment", "key", key, "value", v)
			return def
		}
		return d
	}
	return def
}
