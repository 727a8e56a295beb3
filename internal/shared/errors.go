package shared

import "errors"

// Errors returned by the sign-in and anti-forgery helpers.
var (
	// ErrInvalidCredentials rejects a sign-in with an empty name or a
	// password that fails the configured hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionMissing means the request bypassed the session middleware,
	// so no anti-forgery token can be minted.
	ErrSessionMissing     = errors.New("session missing")
	ErrCSRFTokenMissing   = errors.New("csrf token missing")
	ErrCSRFTokenMismatch  = errors.New("csrf token mismatch")
)
