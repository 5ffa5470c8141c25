// Package authn is a self-hosted implementation of backend.AuthClient: password
// accounts hashed with bcrypt, JWT access tokens, and revocable server-side sessions.
package authn

import "time"

// User is a storefront account. Password holds the bcrypt hash.
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps accounts apart from the application tables.
func (User) TableName() string {
	return "auth_users"
}

// Session backs one issued access token; sign-out revokes it.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Expired reports whether the session ended at or before at.
func (s *Session) Expired(at time.Time) bool {
	return !at.Before(s.ExpiresAt)
}

func (s *Session) Revoked() bool { return s.RevokedAt != nil }

// Live reports whether the token bound to s may still authenticate at the given time.
func (s *Session) Live(at time.Time) bool {
	return !s.Revoked() && !s.Expired(at)
}
