// Package jwtmw issues and verifies HS256 access tokens and guards routes with them.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// ErrInvalidToken is returned for tokens that fail signature, expiry, or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded payload of an access token.
type Claims struct {
	UserID    string
	Email     string
	SessionID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Generator issues and parses access tokens.
type Generator interface {
	// GenerateToken creates a signed token for the given user and session.
	GenerateToken(userID, email, sessionID string) (token string, expiresAt time.Time, err error)
	// ParseToken verifies token and returns its claims.
	ParseToken(token string) (*Claims, error)
}

// tokenClaims mirrors the claim names used by hosted auth servers, so tokens
// issued there can be decoded with the same shared secret.
type tokenClaims struct {
	Email     string `json:"email,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

var _ Generator = (*generator)(nil)

// GenerateToken creates a signed JWT token with standard claims.
func (g *generator) GenerateToken(userID, email, sessionID string) (string, time.Time, error) {
	now := g.now()
	expiresAt := now.Add(g.expiration)
	claims := tokenClaims{
		Email:     email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies the signature (HMAC only) and expiry of tokenStr.
func (g *generator) ParseToken(tokenStr string) (*Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(g.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	out := &Claims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		SessionID: claims.SessionID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
