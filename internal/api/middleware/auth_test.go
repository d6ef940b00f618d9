package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmvolkov/shop/internal/auth"
)

func newTestTokenService() *auth.TokenService {
	return auth.NewTokenService("test-secret-key-for-testing-purposes", 15*time.Minute)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := newTestTokenService()
	middleware := RequireAuth(tokens)

	token, _, err := tokens.Generate("alice")
	require.NoError(t, err)

	var capturedUsername string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if username, ok := UsernameFromContext(r.Context()); ok {
			capturedUsername = username
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", capturedUsername)
}

func TestRequireAuth_NoToken(t *testing.T) {
	middleware := RequireAuth(newTestTokenService())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	middleware := RequireAuth(newTestTokenService())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	})

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong signature", mustToken(t, auth.NewTokenService("some-other-secret-key-entirely!!", 15*time.Minute))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			middleware(handler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expiring := auth.NewTokenService("test-secret-key-for-testing-purposes", 1*time.Millisecond)
	middleware := RequireAuth(expiring)

	token, _, err := expiring.Generate("alice")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	})

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "Bearer the-token")
	assert.Equal(t, "the-token", ExtractToken(req))
}

func mustToken(t *testing.T, service *auth.TokenService) string {
	t.Helper()
	token, _, err := service.Generate("alice")
	require.NoError(t, err)
	return token
}
