// Package backend defines the typed client the storefront uses for authentication,
// row persistence, and object storage. Concrete implementations live in subpackages.
package backend

import (
	"context"
	"io"
	"time"
)

// Identity is the authenticated user as seen by the application.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an issued access token together with the identity it belongs to.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         Identity  `json:"user"`
}

// AuthClient issues and resolves sessions.
type AuthClient interface {
	// GetSession decodes the session carried by accessToken without a round-trip
	// to the session store. Returns ErrNotAuthenticated when there is none.
	GetSession(ctx context.Context, accessToken string) (*Session, error)

	// GetUser resolves the identity behind accessToken and checks it is still live.
	GetUser(ctx context.Context, accessToken string) (*Identity, error)

	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// RowStore is table-oriented persistence with equality filters and one ordering column.
// dest arguments are pointers to a struct (single row) or to a slice of structs.
type RowStore interface {
	Select(ctx context.Context, q Query, dest any) error
	// Single returns ErrNoRows when no row matches.
	Single(ctx context.Context, q Query, dest any) error
	// Insert writes row into table; when dest is non-nil the stored row is read back into it.
	Insert(ctx context.Context, table string, row any, dest any) error
	// Update applies patch to the rows matching q; when dest is non-nil the single
	// updated row is read back into it and ErrNoRows is returned if nothing matched.
	Update(ctx context.Context, q Query, patch map[string]any, dest any) error
	// Delete removes the rows matching q. A query without filters is rejected.
	Delete(ctx context.Context, q Query) error
}

// ObjectStore is a bucket of path-addressed files with public URLs.
type ObjectStore interface {
	Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string, upsert bool) error
	Remove(ctx context.Context, paths ...string) error
	PublicURL(path string) string
}

// Client bundles the three backend capabilities.
type Client struct {
	Auth    AuthClient
	Rows    RowStore
	Objects ObjectStore
}

type accessTokenKey struct{}

// WithAccessToken attaches the caller's access token to ctx so that row and object
// stores enforcing per-user policies can forward it.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFrom returns the token attached by WithAccessToken, or "".
func AccessTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}
