package hosted

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront_backend/internal/platform/backend"
	jwtmw "storefront_backend/internal/platform/jwt"
)

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int64   `json:"expires_in"`
	ExpiresAt    int64   `json:"expires_at"`
	User         userDTO `json:"user"`
}

// signupResponse covers both shapes: a bare user when confirmation is pending,
// or a session wrapping the user when auto-confirm is on.
type signupResponse struct {
	userDTO
	User *userDTO `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Auth implements backend.AuthClient over the /auth/v1 API.
type Auth struct {
	t      *transport
	tokens jwtmw.Generator
	now    func() time.Time
}

var _ backend.AuthClient = (*Auth)(nil)

func newAuth(t *transport) *Auth {
	a := &Auth{t: t, now: time.Now}
	if t.cfg.JWTSecret != "" {
		a.tokens = jwtmw.NewGenerator(t.cfg.JWTSecret, 0)
	}
	return a
}

func (a *Auth) SignInWithPassword(ctx context.Context, email, password string) (*backend.Session, error) {
	body, err := jsonBody(credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	res, err := a.t.do(ctx, request{
		method:  http.MethodPost,
		path:    "/auth/v1/token",
		query:   url.Values{"grant_type": {"password"}},
		body:    body,
		headers: map[string]string{"Content-Type": "application/json"},
		token:   a.t.cfg.AnonKey,
	})
	if err != nil {
		return nil, err
	}
	var out tokenResponse
	if err := decode(res, &out); err != nil {
		return nil, err
	}

	expiresAt := time.Unix(out.ExpiresAt, 0)
	if out.ExpiresAt == 0 {
		expiresAt = a.now().Add(time.Duration(out.ExpiresIn) * time.Second)
	}
	return &backend.Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    expiresAt,
		User:         backend.Identity{ID: out.User.ID, Email: out.User.Email},
	}, nil
}

func (a *Auth) SignUp(ctx context.Context, email, password string) (*backend.Identity, error) {
	body, err := jsonBody(credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	res, err := a.t.do(ctx, request{
		method:  http.MethodPost,
		path:    "/auth/v1/signup",
		body:    body,
		headers: map[string]string{"Content-Type": "application/json"},
		token:   a.t.cfg.AnonKey,
	})
	if err != nil {
		return nil, err
	}
	var out signupResponse
	if err := decode(res, &out); err != nil {
		return nil, err
	}

	user := out.userDTO
	if out.User != nil {
		user = *out.User
	}
	if user.ID == "" {
		return nil, fmt.Errorf("signup response carried no user")
	}
	return &backend.Identity{ID: user.ID, Email: user.Email}, nil
}

// GetUser asks the auth server who owns accessToken.
func (a *Auth) GetUser(ctx context.Context, accessToken string) (*backend.Identity, error) {
	if accessToken == "" {
		return nil, backend.ErrNotAuthenticated
	}
	res, err := a.t.do(ctx, request{method: http.MethodGet, path: "/auth/v1/user", token: accessToken})
	if err != nil {
		return nil, asNotAuthenticated(err)
	}
	var out userDTO
	if err := decode(res, &out); err != nil {
		return nil, err
	}
	return &backend.Identity{ID: out.ID, Email: out.Email}, nil
}

// GetSession decodes accessToken with the shared JWT secret when one is
// configured, and otherwise falls back to GetUser.
func (a *Auth) GetSession(ctx context.Context, accessToken string) (*backend.Session, error) {
	if accessToken == "" {
		return nil, backend.ErrNotAuthenticated
	}
	if a.tokens != nil {
		claims, err := a.tokens.ParseToken(accessToken)
		if err != nil {
			return nil, backend.ErrNotAuthenticated
		}
		return &backend.Session{
			AccessToken: accessToken,
			ExpiresAt:   claims.ExpiresAt,
			User:        backend.Identity{ID: claims.UserID, Email: claims.Email},
		}, nil
	}

	user, err := a.GetUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return &backend.Session{AccessToken: accessToken, User: *user}, nil
}

func (a *Auth) SignOut(ctx context.Context, accessToken string) error {
	res, err := a.t.do(ctx, request{method: http.MethodPost, path: "/auth/v1/logout", token: accessToken})
	if err != nil {
		return asNotAuthenticated(err)
	}
	return decode(res, nil)
}

func asNotAuthenticated(err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
		return fmt.Errorf("%w: %s", backend.ErrNotAuthenticated, apiErr.Message)
	}
	return err
}
