package hosted

import (
	"net/http"
	"strings"

	"storefront_backend/internal/platform/backend"
)

// New builds a backend.Client whose three capabilities share one HTTP client.
func New(cfg Config, client *http.Client) *backend.Client {
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	t := &transport{cfg: cfg, client: client}
	return &backend.Client{
		Auth:    newAuth(t),
		Rows:    &Rows{t: t},
		Objects: &Storage{t: t, bucket: cfg.Bucket},
	}
}
