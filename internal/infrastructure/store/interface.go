package store

import (
	"context"

	"github.com/mmvolkov/shop/internal/domain"
)

// UserStore holds credential records. Uniqueness of username and API key is
// enforced atomically at the storage boundary: a concurrent duplicate insert
// fails, it does not race.
type UserStore interface {
	// CreateUser persists a new user. Returns domain.ErrUsernameTaken or
	// domain.ErrDuplicateAPIKey on a unique-constraint violation.
	CreateUser(ctx context.Context, user *domain.User) error

	// UserByUsername returns domain.ErrUserNotFound if no such user exists.
	UserByUsername(ctx context.Context, username string) (*domain.User, error)

	// UserByAPIKey returns domain.ErrUserNotFound if no user owns the key.
	UserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)

	// UsernameExists is a best-effort pre-check; CreateUser remains the
	// authoritative guard.
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// CatalogStore holds categories and items. Every mutation that reads then
// writes an item's quantity executes as a single atomic unit scoped to that
// item; cross-item transactions are never required.
type CatalogStore interface {
	// CreateCategory returns domain.ErrDuplicateCategory on a name clash.
	CreateCategory(ctx context.Context, category *domain.Category) error

	// Category returns domain.ErrCategoryNotFound if absent.
	Category(ctx context.Context, id string) (*domain.Category, error)

	Categories(ctx context.Context) ([]domain.Category, error)

	// CreateItem returns domain.ErrCategoryNotFound if the referenced
	// category does not exist.
	CreateItem(ctx context.Context, item *domain.Item) error

	// Item returns domain.ErrItemNotFound if absent.
	Item(ctx context.Context, id string) (*domain.Item, error)

	Items(ctx context.Context) ([]domain.Item, error)

	ItemsByCategory(ctx context.Context, categoryID string) ([]domain.Item, error)

	// ApplyItemUpdate applies the update intent all-or-nothing and returns
	// the resulting item. A failed category lookup leaves every field
	// untouched. The quantity delta is not clamped at zero.
	ApplyItemUpdate(ctx context.Context, itemID string, upd domain.ItemUpdate) (*domain.Item, error)

	// DecrementItemQuantity subtracts quantity from the item's stock only if
	// enough stock remains, atomically with respect to concurrent decrements.
	// Returns the updated item, domain.ErrItemNotFound, or
	// domain.ErrInsufficientQuantity (stock untouched).
	DecrementItemQuantity(ctx context.Context, itemID string, quantity int) (*domain.Item, error)
}
