package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, h.Verify("correct horse battery staple", hash))
	assert.False(t, h.Verify("wrong password", hash))
	assert.False(t, h.Verify("", hash))
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher()

	h1, err := h.Hash("password")
	require.NoError(t, err)
	h2, err := h.Hash("password")
	require.NoError(t, err)

	// same input, different salt, different hash
	assert.NotEqual(t, h1, h2)
}
