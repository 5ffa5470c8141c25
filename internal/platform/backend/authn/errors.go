package authn

import "errors"

// Repository lookups and inserts report these; Provider turns them into
// backend errors before they reach a caller.
var (
	ErrUserNotFound       = errors.New("authn: no account with that email or id")
	ErrEmailAlreadyExists = errors.New("authn: email already registered")
	ErrSessionNotFound    = errors.New("authn: unknown session")
)
