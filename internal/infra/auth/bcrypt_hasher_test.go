package auth

import (
	"testing"

	"shopfront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 4}})

	password := "s3cret-pass"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.NoError(t, hasher.Compare(hash, password))
	assert.Error(t, hasher.Compare(hash, "wrong-password"))
	assert.Error(t, hasher.Compare("not-a-bcrypt-hash", password))
}

func TestBcryptHasher_CustomCost(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 6}})

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 6, cost)
}

func TestBcryptHasher_OutOfRangeCostFallsBackToDefault(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 99}})

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
