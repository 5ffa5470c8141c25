package hosted

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"storefront_backend/internal/platform/backend"
)

// Storage implements backend.ObjectStore over the /storage/v1 API.
type Storage struct {
	t      *transport
	bucket string
}

var _ backend.ObjectStore = (*Storage)(nil)

func (s *Storage) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string, upsert bool) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	res, err := s.t.do(ctx, request{
		method: http.MethodPost,
		path:   "/storage/v1/object/" + s.bucket + "/" + escapePath(path),
		body:   body,
		length: size,
		headers: map[string]string{
			"Content-Type": contentType,
			"x-upsert":     strconv.FormatBool(upsert),
		},
	})
	if err != nil {
		return err
	}
	return decode(res, nil)
}

type removeRequest struct {
	Prefixes []string `json:"prefixes"`
}

func (s *Storage) Remove(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	body, err := jsonBody(removeRequest{Prefixes: paths})
	if err != nil {
		return err
	}
	res, err := s.t.do(ctx, request{
		method:  http.MethodDelete,
		path:    "/storage/v1/object/" + s.bucket,
		body:    body,
		headers: map[string]string{"Content-Type": "application/json"},
	})
	if err != nil {
		return err
	}
	return decode(res, nil)
}

// PublicURL returns the unauthenticated download URL of path.
func (s *Storage) PublicURL(path string) string {
	return s.t.cfg.URL + "/storage/v1/object/public/" + s.bucket + "/" + escapePath(path)
}
