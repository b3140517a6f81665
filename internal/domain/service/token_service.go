package service

import "time"

// TokenPair carries a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenService issues and validates signed tokens for back-office sessions.
type TokenService interface {
	// GenerateTokenPair issues an access and refresh token for an admin id.
	GenerateTokenPair(adminID string) (*TokenPair, error)

	// ValidateAccessToken parses and verifies an access token, returning
	// the admin id it was issued for.
	ValidateAccessToken(token string) (string, error)

	// ValidateRefreshToken parses and verifies a refresh token, returning
	// the admin id it was issued for.
	ValidateRefreshToken(token string) (string, error)
}

// PasswordHasher hashes and verifies back-office account passwords.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password string) (string, error)

	// Compare reports whether the plaintext matches the stored hash.
	Compare(hash, password string) error
}
