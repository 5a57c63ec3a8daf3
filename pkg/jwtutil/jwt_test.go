package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{SigningKey: "unit-test-key", ExpirationHours: 1})

	token, err := util.GenerateToken(42, "dev@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "dev@example.com", claims.Email)
}

func TestValidateToken_WrongKeyRejected(t *testing.T) {
	issuer := NewJWTUtil(&JWTConfig{SigningKey: "key-one", ExpirationHours: 1})
	verifier := NewJWTUtil(&JWTConfig{SigningKey: "key-two", ExpirationHours: 1})

	token, err := issuer.GenerateToken(1, "dev@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_GarbageRejected(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{SigningKey: "unit-test-key", ExpirationHours: 1})

	_, err := util.ValidateToken("not.a.token")
	assert.Error(t, err)
}
