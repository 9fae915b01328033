package profile

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestDefaultAvatarURL(t *testing.T) {
	assert.Equal(t,
		"https://api.dicebear.com/7.x/avataaars/svg?seed=alice",
		DefaultAvatarURL("alice"))
}

func TestValidateNewPassword(t *testing.T) {
	assert.ErrorIs(t, ValidateNewPassword("secret1", "secret2"), ErrPasswordMismatch)
	assert.ErrorIs(t, ValidateNewPassword("abc", "abc"), ErrPasswordTooShort)

	// Mismatch wins over length: the pair is rejected before the
	// short password is.
	assert.ErrorIs(t, ValidateNewPassword("abc", "abcd"), ErrPasswordMismatch)

	assert.NoError(t, ValidateNewPassword("secret", "secret"))
	assert.NoError(t, ValidateNewPassword("a longer passphrase", "a longer passphrase"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))

	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isUniqueViolation(errors.New(`pq: duplicate key value violates unique constraint "profiles_username_key"`)))
}
