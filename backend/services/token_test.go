package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssueAndParse(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)
	token, err := s.Issue("org-1")
	require.NoError(t, err)

	sub, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "org-1", sub)
}

func TestTokenExpired(t *testing.T) {
	s := NewTokenService("test-secret", time.Minute)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := s.Issue("org-1")
	require.NoError(t, err)

	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("one", time.Hour).Issue("org-1")
	require.NoError(t, err)

	_, err = NewTokenService("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenRequiresClaims(t *testing.T) {
	secret := []byte("test-secret")
	s := NewTokenService(string(secret), time.Hour)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := noSubject.SignedString(secret)
	require.NoError(t, err)
	_, err = s.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  "org-1",
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	signed, err = noExpiry.SignedString(secret)
	require.NoError(t, err)
	_, err = s.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	s := NewTokenService("test-secret", time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "org-1",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = s.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenService("x", time.Hour).Parse("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
