package authn

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront_backend/internal/platform/backend"
	jwtmw "storefront_backend/internal/platform/jwt"
)

const (
	minPasswordLength = 8

	// maxSessionsPerUser caps concurrent sign-ins; the oldest is dropped first.
	maxSessionsPerUser = 5

	// dummyHash keeps sign-in timing the same whether or not the email exists.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

var errInvalidCredentials = &backend.APIError{
	Status:  http.StatusBadRequest,
	Code:    "invalid_credentials",
	Message: "Invalid login credentials",
}

// Provider implements backend.AuthClient on local storage.
type Provider struct {
	users    UserRepository
	sessions SessionRepository
	tokens   jwtmw.Generator
	now      func() time.Time
}

var _ backend.AuthClient = (*Provider)(nil)

// NewProvider wires the repositories and token generator. The generator's
// expiration is the session lifetime.
func NewProvider(users UserRepository, sessions SessionRepository, tokens jwtmw.Generator) *Provider {
	return &Provider{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		now:      time.Now,
	}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &backend.APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "weak_password",
			Message: fmt.Sprintf("Password should be at least %d characters.", minPasswordLength),
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new account.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*backend.Identity, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{ID: uuid.NewString(), Email: normalizeEmail(email), Password: string(hashed)}
	if err := p.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, &backend.APIError{
				Status:  http.StatusUnprocessableEntity,
				Code:    "user_already_exists",
				Message: "User already registered",
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &backend.Identity{ID: user.ID, Email: user.Email}, nil
}

// SignInWithPassword checks the credentials and opens a new session.
// bcrypt runs even for unknown emails so both failures take the same time.
func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*backend.Session, error) {
	user, err := p.users.FindByEmail(ctx, normalizeEmail(email))

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, errInvalidCredentials
	}

	now := p.now()
	active, err := p.sessions.Active(ctx, user.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for len(active) >= maxSessionsPerUser {
		if err := p.sessions.Delete(ctx, active[0].ID); err != nil {
			return nil, fmt.Errorf("failed to drop oldest session: %w", err)
		}
		active = active[1:]
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := p.tokens.GenerateToken(user.ID, user.Email, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := p.sessions.Create(ctx, &Session{
		ID:        sessionID,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &backend.Session{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        backend.Identity{ID: user.ID, Email: user.Email},
	}, nil
}

// GetSession decodes the token locally. It does not consult the session store,
// so a revoked token still decodes until it expires; use GetUser for that check.
func (p *Provider) GetSession(_ context.Context, accessToken string) (*backend.Session, error) {
	if accessToken == "" {
		return nil, backend.ErrNotAuthenticated
	}
	claims, err := p.tokens.ParseToken(accessToken)
	if err != nil {
		return nil, backend.ErrNotAuthenticated
	}
	return &backend.Session{
		AccessToken: accessToken,
		ExpiresAt:   claims.ExpiresAt,
		User:        backend.Identity{ID: claims.UserID, Email: claims.Email},
	}, nil
}

// GetUser verifies the token and that its session is still live.
func (p *Provider) GetUser(ctx context.Context, accessToken string) (*backend.Identity, error) {
	if accessToken == "" {
		return nil, backend.ErrNotAuthenticated
	}
	claims, err := p.tokens.ParseToken(accessToken)
	if err != nil {
		return nil, backend.ErrNotAuthenticated
	}

	session, err := p.sessions.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, backend.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Live(p.now()) || session.UserID != claims.UserID {
		return nil, backend.ErrNotAuthenticated
	}

	user, err := p.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, backend.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &backend.Identity{ID: user.ID, Email: user.Email}, nil
}

// SignOut revokes the session behind accessToken. An unknown session is not an error.
func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	claims, err := p.tokens.ParseToken(accessToken)
	if err != nil {
		return backend.ErrNotAuthenticated
	}
	if err := p.sessions.Revoke(ctx, claims.SessionID, p.now()); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired sessions from storage.
func (p *Provider) PurgeExpired(ctx context.Context) (int64, error) {
	return p.sessions.DeleteExpired(ctx, p.now())
}
