package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBindIDParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		param   string
		want    string
		wantErr bool
	}{
		{name: "uuid", param: "0b6f3c1e-2a4d-4c4e-9f59-1f7f4b1d2a10", want: "0b6f3c1e-2a4d-4c4e-9f59-1f7f4b1d2a10"},
		{name: "numeric", param: "42", want: "42"},
		{name: "missing", param: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Params = gin.Params{{Key: "id", Value: tt.param}}

			got, err := BindIDParam(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindBoolQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    bool
		wantErr bool
	}{
		{name: "absent", url: "/x", want: false},
		{name: "true", url: "/x?confirm=true", want: true},
		{name: "false", url: "/x?confirm=false", want: false},
		{name: "garbage", url: "/x?confirm=maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.url, nil)

			got, err := BindBoolQuery(c, "confirm")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
