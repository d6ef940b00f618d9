package domain

import "time"

// Role is a coarse permission level attached to a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is an authenticated actor. The password hash and API key are opaque
// secrets; the plaintext password never leaves the registration/login path.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	APIKey       string
	Roles        []Role
	CreatedAt    time.Time
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
