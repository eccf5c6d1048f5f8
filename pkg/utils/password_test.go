package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "password1")

	ok, err := VerifyPassword("password1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("password2", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("same-secret")
	require.NoError(t, err)
	h2, err := HashPassword("same-secret")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{"", "plaintext", "$bcrypt$whatever", "$argon2id$v=19$m=65536,t=3,p=2$notbase64!!$x"} {
		_, err := VerifyPassword("anything", encoded)
		assert.ErrorIs(t, err, ErrInvalidHashFormat, "hash %q", encoded)
	}
}
