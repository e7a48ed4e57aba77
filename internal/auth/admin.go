package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
)

// AdminAuthenticator validates the shared admin secret sent as an
// "X-Admin-Secret" header. The secret is compared as a SHA-256 digest in
// constant time, the same technique the underlying HTTP stack uses for
// API-key comparisons.
type AdminAuthenticator struct {
	expectedHash [32]byte
}

// NewAdminAuthenticator builds an AdminAuthenticator for the given secret,
// loaded once at startup from settings.
func NewAdminAuthenticator(secret string) *AdminAuthenticator {
	return &AdminAuthenticator{
		// #nosec G401 -- high-entropy shared secret, not a user password
		expectedHash: sha256.Sum256([]byte(secret)),
	}
}

// Validate checks the X-Admin-Secret header against the configured secret.
func (a *AdminAuthenticator) Validate(r *http.Request) Result {
	provided := r.Header.Get("X-Admin-Secret")
	if provided == "" {
		return Result{Type: TypeAdmin, Error: "missing x-admin-secret header"}
	}

	// #nosec G401 -- high-entropy shared secret, not a user password
	providedHash := sha256.Sum256([]byte(provided))
	if subtle.ConstantTimeCompare(providedHash[:], a.expectedHash[:]) != 1 {
		return Result{Type: TypeAdmin, Error: "invalid admin secret"}
	}
	return Result{Type: TypeAdmin, Valid: true}
}

// Type implements Authenticator.
func (a *AdminAuthenticator) Type() Type {
	return TypeAdmin
}
