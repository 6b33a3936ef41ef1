package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSymmetricKey = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", testSymmetricKey)

	token, err := GenerateAccessToken("u1", "doctor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "doctor", claims.Role)
}

func TestValidateTokenRoleCheck(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", testSymmetricKey)

	token, err := GenerateAccessToken("u1", "patient")
	require.NoError(t, err)

	_, err = ValidateToken(token, "patient", "doctor")
	assert.NoError(t, err)

	_, err = ValidateToken(token, "doctor")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", testSymmetricKey)

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateTokensPair(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", testSymmetricKey)

	access, refresh, err := GenerateTokens("u2", "patient")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
}

func TestGenerateResetCode(t *testing.T) {
	code := GenerateResetCode()
	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}
