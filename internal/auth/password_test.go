package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash, "the plaintext must never be stored")

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("secret124", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "two hashes of the same password must differ")
}

func TestGenerateSessionToken(t *testing.T) {
	first, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.Len(t, first, 64, "32 random bytes hex-encoded")

	second, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
