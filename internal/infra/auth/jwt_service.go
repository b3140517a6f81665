// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopfront/config"
	"shopfront/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     time.Minute * 15,
		refreshTTL:    time.Hour * 24 * 7,
	}, nil
}

// GenerateTokenPair creates a new access token and refresh token for an admin account.
func (s *jwtService) GenerateTokenPair(adminID string) (*service.TokenPair, error) {
	expiresAt := time.Now().Add(s.accessTTL)

	accessToken, err := s.generateToken(adminID, s.accessTTL, s.accessSecret, "access")
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateToken(adminID, s.refreshTTL, s.refreshSecret, "refresh")
	if err != nil {
		return nil, err
	}

	return &service.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// ValidateAccessToken checks an access token and returns the admin id it carries.
func (s *jwtService) ValidateAccessToken(token string) (string, error) {
	return s.validateToken(token, s.accessSecret, "access")
}

// ValidateRefreshToken checks a refresh token and returns the admin id it carries.
func (s *jwtService) ValidateRefreshToken(token string) (string, error) {
	return s.validateToken(token, s.refreshSecret, "refresh")
}

// validateToken parses a token string and verifies its signature and type claim.
func (s *jwtService) validateToken(tokenString, secret, tokenType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	if claimedType, _ := claims["type"].(string); claimedType != tokenType {
		return "", jwt.ErrTokenInvalidClaims
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", jwt.ErrTokenInvalidSubject
	}

	return subject, nil
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(adminID string, ttl time.Duration, secret, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  adminID,                    // Subject (who the token is for)
		"iat":  time.Now().Unix(),          // Issued At
		"exp":  time.Now().Add(ttl).Unix(), // Expiration Time
		"type": tokenType,                  // Type of token (access or refresh)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}
