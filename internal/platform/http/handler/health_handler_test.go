package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestHealth(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Any("/healthz", Health)

	tests := []struct {
		method   string
		wantCode int
		wantBody bool
	}{
		{method: http.MethodGet, wantCode: http.StatusOK, wantBody: true},
		{method: http.MethodHead, wantCode: http.StatusOK},
		{method: http.MethodOptions, wantCode: http.StatusNoContent},
		{method: http.MethodPost, wantCode: http.StatusOK, wantBody: true},
		{method: http.MethodDelete, wantCode: http.StatusOK, wantBody: true},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if !tt.wantBody {
				assert.Zero(t, w.Body.Len())
				return
			}
			assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
		})
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	rows := Check{Name: "rows", Ping: func(context.Context) error { return nil }}
	views := Check{Name: "views", Ping: func(context.Context) error { return errors.New("refused") }}

	tests := []struct {
		name       string
		checks     []Check
		wantStatus int
		wantState  string
		wantChecks map[string]string
	}{
		{name: "no checks", wantStatus: http.StatusOK, wantState: "ok", wantChecks: map[string]string{}},
		{name: "row store up", checks: []Check{rows}, wantStatus: http.StatusOK, wantState: "ok", wantChecks: map[string]string{"rows": "up"}},
		{name: "view cache down", checks: []Check{rows, views}, wantStatus: http.StatusServiceUnavailable, wantState: "degraded", wantChecks: map[string]string{"rows": "up", "views": "down"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.GET("/readyz", Ready(tt.checks...))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantState, body.Status)
			assert.Equal(t, tt.wantChecks, body.Checks)
		})
	}
}
