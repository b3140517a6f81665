package service

import "context"

// AuthClaims carries the identity extracted from a verified bearer token.
type AuthClaims struct {
	UID   string
	Email string
}

// TokenVerifier verifies bearer tokens issued by the identity provider.
type TokenVerifier interface {
	// VerifyIDToken checks the token signature and expiry and returns the
	// claims it carries.
	VerifyIDToken(ctx context.Context, idToken string) (*AuthClaims, error)
}
