// Package middleware contains the HTTP API's authentication and error middleware.
package middleware

import (
	"strings"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/response"
	"shopfront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware authenticates customers with the identity provider's ID
// tokens and admins with locally issued JWT access tokens.
type AuthMiddleware struct {
	verifier service.TokenVerifier
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.TokenVerifier, tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, tokenSvc: tokenSvc}
}

// Authenticate validates the customer's ID token and stores the uid and
// email on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := m.verifier.VerifyIDToken(c.Request().Context(), tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetUser(c, claims.UID, claims.Email)

		return next(c)
	}
}

// AuthenticateAdmin validates an admin access token and stores the admin id
// on the context.
func (m *AuthMiddleware) AuthenticateAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return err
		}

		adminID, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetAdminID(c, adminID)

		return next(c)
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
	}

	return tokenString, nil
}
