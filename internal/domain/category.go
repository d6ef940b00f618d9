package domain

import "time"

// Category groups catalog items. Items reference a category by ID; the
// reverse relation is served by the items-by-category query, not a pointer.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
