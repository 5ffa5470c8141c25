package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"storefront_backend/internal/platform/backend"
)

// transport issues authenticated requests against the project URL.
type transport struct {
	cfg    Config
	client *http.Client
}

type request struct {
	method  string
	path    string
	query   url.Values
	body    io.Reader
	length  int64
	headers map[string]string
	// token overrides the bearer token taken from the context.
	token string
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewReader(b), nil
}

// do sends r and returns the response for 2xx statuses. Other statuses are
// decoded into *backend.APIError and the body is closed.
func (t *transport) do(ctx context.Context, r request) (*http.Response, error) {
	u := t.cfg.URL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, err
	}
	if r.length > 0 {
		req.ContentLength = r.length
	}

	token := r.token
	if token == "" {
		token = backend.AccessTokenFrom(ctx)
	}
	if token == "" {
		token = t.cfg.AnonKey
	}
	req.Header.Set("apikey", t.cfg.AnonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		defer closeBody(res)
		return nil, decodeError(res)
	}
	return res, nil
}

// decode reads a JSON body into dest (when non-nil) and closes it.
func decode(res *http.Response, dest any) error {
	defer closeBody(res)
	if dest == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func closeBody(res *http.Response) {
	if err := res.Body.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err)
	}
}

// decodeError maps the error shapes of the auth, rest, and storage services
// onto one APIError.
func decodeError(res *http.Response) error {
	apiErr := &backend.APIError{Status: res.StatusCode}

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
		apiErr.Message = firstString(body, "msg", "message", "error_description", "error")
		apiErr.Code = firstString(body, "error_code", "code")
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(res.StatusCode)
	}
	return apiErr
}

func firstString(body map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := body[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// escapePath escapes each segment of an object path.
func escapePath(p string) string {
	segments := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
