package main

import (
	"crypto/subtle"
)

// CredentialVerifier checks an admin credential. The comparison strategy
// lives behind this interface so callers never touch the secret itself.
type CredentialVerifier interface {
	// Verify reports whether the supplied credential is acceptable.
	Verify(credential string) bool
}

// StaticVerifier compares against one fixed secret. This is a placeholder
// gate, not a security boundary.
type StaticVerifier struct {
	secret string
}

// NewStaticVerifier creates a verifier for the given secret. An empty
// secret falls back to the compiled-in default.
func NewStaticVerifier(secret string) *StaticVerifier {
	if secret == "" {
		secret = DefaultAdminSecret
	}
	return &StaticVerifier{secret: secret}
}

// Verify performs a constant-time comparison against the fixed secret.
func (v *StaticVerifier) Verify(credential string) bool {
	return subtle.ConstantTimeCompare([]byte(credential), []byte(v.secret)) == 1
}
