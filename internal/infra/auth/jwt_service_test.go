package auth

import (
	"testing"

	"shopfront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokenPair(t *testing.T) {
	jwtService, err := NewJWTService(newJWTTestConfig())
	require.NoError(t, err)

	pair, err := jwtService.GenerateTokenPair("admin-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.False(t, pair.ExpiresAt.IsZero())

	adminID, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", adminID)

	adminID, err = jwtService.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", adminID)
}

func TestJWTService_TokenTypesAreNotInterchangeable(t *testing.T) {
	jwtService, err := NewJWTService(newJWTTestConfig())
	require.NoError(t, err)

	pair, err := jwtService.GenerateTokenPair("admin-1")
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = jwtService.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newJWTTestConfig())
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken("clearly-not-a-jwt-token")
	assert.Error(t, err)
}

func TestJWTService_MissingSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}
