package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2-long-enough")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2-long-enough", hash)

	assert.True(t, CheckPassword(hash, "hunter2-long-enough"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "hunter2-long-enough"))

	// Hashing is salted: two hashes of the same input differ.
	hash2, err := HashPassword("hunter2-long-enough")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}
