package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "PUBLIC_BASE_URL", "BACKEND_MODE", "ROW_STORE", "OBJECT_STORE",
		"JWT_EXPIRATION", "COOKIE_SECURE", "CORS_ALLOWED_ORIGINS", "VIEW_STATE_TTL", "LOGIN_RATE_LIMIT",
		"LOGIN_RATE_WINDOW", "SESSION_PURGE_INTERVAL"} {
		t.Setenv(k, "")
	}
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, RowStoreGorm, cfg.RowStore)
	assert.Equal(t, ObjectStoreMinio, cfg.ObjectStore)
	assert.Equal(t, "http://localhost:3000", cfg.PublicBaseURL)
	assert.Equal(t, time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BACKEND_MODE", "HOSTED")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PUBLIC_BASE_URL", "https://vitrine.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("JWT_EXPIRATION", "15m")
	t.Setenv("LOGIN_RATE_LIMIT", "nope")

	cfg, err := LoadConfig()
	require.NoError(t, err, "hosted mode does not need a local secret")
	assert.Equal(t, BackendHosted, cfg.Backend)
	assert.Equal(t, "https://vitrine.example.com", cfg.PublicBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.SecureCookie)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiration)
	assert.Equal(t, 10, cfg.LoginRateLimit, "invalid value falls back to default")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown mode", env: map[string]string{"BACKEND_MODE": "ftp", "JWT_SECRET": "x"}},
		{name: "unknown row store", env: map[string]string{"BACKEND_MODE": "local", "ROW_STORE": "csv", "JWT_SECRET": "x"}},
		{name: "unknown object store", env: map[string]string{"BACKEND_MODE": "local", "OBJECT_STORE": "ftp", "JWT_SECRET": "x"}},
		{name: "local without secret", env: map[string]string{"BACKEND_MODE": "local", "JWT_SECRET": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ROW_STORE", "")
			t.Setenv("OBJECT_STORE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
