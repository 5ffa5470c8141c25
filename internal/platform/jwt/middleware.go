package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/api"
	"storefront_backend/internal/platform/backend"
)

const (
	ContextUserID      = "userID"
	ContextIdentity    = "identity"
	ContextAccessToken = "accessToken"

	// AccessTokenCookie carries the access token for browser clients.
	AccessTokenCookie = "sb-access-token"

	// LoginPath is where unauthenticated clients are sent.
	LoginPath = "/login"
)

// IdentityResolver resolves the live identity behind an access token.
type IdentityResolver interface {
	GetUser(ctx context.Context, accessToken string) (*backend.Identity, error)
}

// TokenFromRequest returns the bearer token, or the access-token cookie when no
// Authorization header is present.
func TokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// AuthRequired returns a Gin middleware that lets the request through only when the
// access token resolves to a live identity. Browsers are redirected to LoginPath,
// API clients get 401 with the login URL.
func AuthRequired(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			deny(c)
			return
		}

		identity, err := resolver.GetUser(c.Request.Context(), token)
		if err != nil || identity == nil {
			if err != nil && !errors.Is(err, backend.ErrNotAuthenticated) {
				slog.Warn("session lookup failed", "error", err, "remote_addr", c.ClientIP())
			}
			deny(c)
			return
		}

		c.Set(ContextUserID, identity.ID)
		c.Set(ContextIdentity, *identity)
		c.Set(ContextAccessToken, token)
		c.Request = c.Request.WithContext(backend.WithAccessToken(c.Request.Context(), token))
		c.Next()
	}
}

func deny(c *gin.Context) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.UnauthorizedResponse{
		Error:    "not authenticated",
		LoginURL: LoginPath,
	})
}

// IdentityFrom returns the identity stored by AuthRequired.
func IdentityFrom(c *gin.Context) (backend.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return backend.Identity{}, false
	}
	id, ok := v.(backend.Identity)
	return id, ok
}

// AccessTokenFrom returns the token stored by AuthRequired.
func AccessTokenFrom(c *gin.Context) string {
	return c.GetString(ContextAccessToken)
}
