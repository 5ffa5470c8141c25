// Package hosted is a backend.Client for a hosted backend that exposes
// /auth/v1, /rest/v1, and /storage/v1 under one project URL.
package hosted

import (
	"os"
	"strings"
	"time"
)

// DefaultBucket is the storage bucket used when none is configured.
const DefaultBucket = "box"

// Config holds the connection settings for the hosted backend.
type Config struct {
	URL       string        // Project URL, e.g. "https://xyz.example.co"
	AnonKey   string        // Public API key sent with every request
	JWTSecret string        // Optional; enables local access-token decoding
	Bucket    string        // Storage bucket for uploads
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads the hosted backend configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		URL:       strings.TrimRight(os.Getenv("BACKEND_URL"), "/"),
		AnonKey:   os.Getenv("BACKEND_ANON_KEY"),
		JWTSecret: os.Getenv("BACKEND_JWT_SECRET"),
		Bucket:    os.Getenv("STORAGE_BUCKET"),
		Timeout:   10 * time.Second,
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	return cfg
}
