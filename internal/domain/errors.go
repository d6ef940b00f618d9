package domain

import "errors"

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrDuplicateAPIKey      = errors.New("api key already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidAPIKey        = errors.New("invalid api key")
	ErrUserNotFound         = errors.New("user not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrDuplicateCategory    = errors.New("category name already exists")
	ErrItemNotFound         = errors.New("item not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrNegativePrice        = errors.New("price must not be negative")
)
