package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/mmvolkov/shop/internal/auth"
	"github.com/mmvolkov/shop/internal/domain"
	"github.com/mmvolkov/shop/internal/service"
)

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the caller's long-lived API key.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	APIKey    string    `json:"api_key"`
}

// Register handles user registration.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			respondJSONError(w, "Username already exists", http.StatusBadRequest)
		case errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, service.ErrUsernameRequired):
			respondJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("[API] Registration error: %v", err)
			respondJSONError(w, "Registration failed", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
}

// Login handles user login. Bad password and unknown username produce the
// same response.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondJSONError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		log.Printf("[API] Login error: %v", err)
		respondJSONError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		APIKey:    result.APIKey,
	})
}
