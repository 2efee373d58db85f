package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, "worker@example.com", "Worker", testSecret, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "worker@example.com", claims.Email)
	assert.Equal(t, "Worker", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "worker@example.com", "Worker", testSecret, 60)
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(42, "worker@example.com", "Worker", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, testSecret, 30)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestRefreshTokenRejectedByAccessValidation(t *testing.T) {
	// A refresh token carries no role claim; validating it as an access token
	// must not yield usable identity claims.
	token, err := GenerateRefreshToken(7, testSecret, 30)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	if err == nil {
		assert.Empty(t, claims.Role)
		assert.Empty(t, claims.Email)
	}
}
