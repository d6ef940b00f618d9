package auth

import "github.com/google/uuid"

// NewAPIKey generates a fresh random API key. UUIDv4 draws from crypto/rand,
// so keys are unguessable; the store's unique index on api_key remains the
// authority against the (vanishing) chance of a collision.
func NewAPIKey() string {
	return uuid.NewString()
}
