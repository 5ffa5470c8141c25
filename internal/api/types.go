// Package api holds the request and response shapes shared by the HTTP handlers.
package api

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UnauthorizedResponse tells API clients where to sign in.
type UnauthorizedResponse struct {
	Error    string `json:"error"`
	LoginURL string `json:"login_url"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IdentityResponse describes the signed-in user.
type IdentityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenResponse is returned after a successful sign-in.
type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   int64            `json:"expires_at"`
	User        IdentityResponse `json:"user"`
}
