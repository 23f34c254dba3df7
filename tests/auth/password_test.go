package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framelight/studio-api/internal/auth"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, auth.CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, auth.CheckPassword(hash, "wrong password"))
	assert.False(t, auth.CheckPassword(hash, ""))
	assert.False(t, auth.CheckPassword("not-a-bcrypt-hash", "anything"))
}

func TestPasswordHashing_UniqueSalts(t *testing.T) {
	first, err := auth.HashPassword("same input")
	require.NoError(t, err)
	second, err := auth.HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, auth.CheckPassword(first, "same input"))
	assert.True(t, auth.CheckPassword(second, "same input"))
}
