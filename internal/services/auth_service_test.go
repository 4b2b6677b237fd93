package services

import (
	"context"
	"testing"
	"time"

	"pdfchat-backend/internal/auth"
	"pdfchat-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		TokenExpiration: time.Hour,
	}
}

func TestSignupAndLogin(t *testing.T) {
	st := newFakeStore()
	svc := NewAuthService(st, testConfig())

	user, err := svc.Signup(context.Background(), "  Alice@Example.COM ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email is trimmed and lowercased")
	assert.NotEqual(t, "hunter22", user.HashedPassword, "password is never stored in plain text")
	assert.True(t, auth.CheckPasswordHash("hunter22", user.HashedPassword))

	token, loggedIn, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims := &auth.CustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims.UserID, "token carries the authenticated user id")
}

func TestSignupValidation(t *testing.T) {
	svc := NewAuthService(newFakeStore(), testConfig())

	_, err := svc.Signup(context.Background(), "", "password")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Signup(context.Background(), "a@b.com", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSignupDuplicateEmail(t *testing.T) {
	st := newFakeStore()
	svc := NewAuthService(st, testConfig())

	_, err := svc.Signup(context.Background(), "bob@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "BOB@example.com", "password2")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	st := newFakeStore()
	svc := NewAuthService(st, testConfig())

	_, err := svc.Signup(context.Background(), "carol@example.com", "correct-horse")
	require.NoError(t, err)

	// Unknown email and wrong password produce the same error.
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "carol@example.com", "battery-staple")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
