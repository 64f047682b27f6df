package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RejectsShortPasswords(t *testing.T) {
	_, err := HashPassword("short", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = HashPassword("", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestHashPassword_CountsCharactersNotBytes(t *testing.T) {
	// seven runes, more than eight bytes
	_, err := HashPassword("ééééééé", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "wrong horse"))
	assert.False(t, VerifyPassword(hash, ""))
	assert.False(t, VerifyPassword("", "correct horse"))
	assert.False(t, VerifyPassword("not-a-hash", "correct horse"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com\t"))
	assert.Equal(t, "", NormalizeEmail("   "))
}
