package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT(5, "amina", "employee", "secret", time.Hour, "records")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret", "records")
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, "amina", claims.Username)
}

func TestParseJWTRejects(t *testing.T) {
	token, _, err := GenerateJWT(5, "amina", "employee", "secret", time.Hour, "records")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "other-secret", "records")
	assert.Error(t, err)

	_, err = ParseAndValidateJWT(token, "secret", "someone-else")
	assert.Error(t, err)

	expired, _, err := GenerateJWT(5, "amina", "employee", "secret", -time.Minute, "records")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret", "records")
	assert.Error(t, err)
}

func TestClaimsUserIDRejectsGarbage(t *testing.T) {
	c := &Claims{}
	c.Subject = "abc"
	_, err := c.UserID()
	assert.Error(t, err)
	c.Subject = "0"
	_, err = c.UserID()
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))

	long := make([]byte, MaxPasswordBytes+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = HashPassword(string(long))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
