package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret-key-for-testing-purposes", 15*time.Minute)
}

func TestNewTokenService(t *testing.T) {
	service := newTestTokenService()
	assert.NotNil(t, service)
	assert.Equal(t, 15*time.Minute, service.TTL())
}

func TestTokenService_Generate_Success(t *testing.T) {
	service := newTestTokenService()

	token, expiresAt, err := service.Generate("alice")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
}

func TestTokenService_Validate_RoundTrip(t *testing.T) {
	service := newTestTokenService()

	token, _, err := service.Generate("alice")
	require.NoError(t, err)

	username, err := service.Validate(token)

	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	service := NewTokenService("test-secret", 1*time.Millisecond)

	token, _, err := service.Generate("alice")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	username, err := service.Validate(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Empty(t, username)
}

func TestTokenService_Validate_Invalid(t *testing.T) {
	service := newTestTokenService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"random string", "not-a-valid-token"},
		{"malformed JWT", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, err := service.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, username)
		})
	}
}

func TestTokenService_Validate_WrongSignature(t *testing.T) {
	service1 := NewTokenService("secret-key-1", 15*time.Minute)
	service2 := NewTokenService("secret-key-2", 15*time.Minute)

	token, _, err := service1.Generate("alice")
	require.NoError(t, err)

	username, err := service2.Validate(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, username)
}

func TestTokenService_Validate_WrongAlgorithm(t *testing.T) {
	service := newTestTokenService()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "alice"})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	username, err := service.Validate(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, username)
}

func TestTokenService_Validate_MissingUsername(t *testing.T) {
	service := newTestTokenService()

	// A token signed with the right key but carrying no username is rejected.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
	})
	tokenString, err := token.SignedString([]byte("test-secret-key-for-testing-purposes"))
	require.NoError(t, err)

	username, err := service.Validate(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, username)
}
