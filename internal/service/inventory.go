package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmvolkov/shop/internal/domain"
	"github.com/mmvolkov/shop/internal/infrastructure/store"
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrCategoryRequired = errors.New("category is required")
)

// Inventory owns catalog mutation: category and item creation plus the
// partial item update. All quantity arithmetic is delegated to the store so
// it happens atomically against concurrent writers.
type Inventory struct {
	catalog store.CatalogStore
}

// NewInventory creates an Inventory service.
func NewInventory(catalog store.CatalogStore) *Inventory {
	return &Inventory{catalog: catalog}
}

// CreateCategory creates a category with a unique name.
func (s *Inventory) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	category := &domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}

	if err := s.catalog.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Category returns one category by ID.
func (s *Inventory) Category(ctx context.Context, id string) (*domain.Category, error) {
	return s.catalog.Category(ctx, id)
}

// Categories lists all categories.
func (s *Inventory) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.Categories(ctx)
}

// CreateItem creates an item. The category must exist; an item never exists
// without a valid category.
func (s *Inventory) CreateItem(ctx context.Context, name, description string, price decimal.Decimal, quantity int, categoryID string) (*domain.Item, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if categoryID == "" {
		return nil, ErrCategoryRequired
	}
	if price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}

	if _, err := s.catalog.Category(ctx, categoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &domain.Item{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.catalog.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Item returns one item by ID.
func (s *Inventory) Item(ctx context.Context, id string) (*domain.Item, error) {
	return s.catalog.Item(ctx, id)
}

// Items lists all items.
func (s *Inventory) Items(ctx context.Context) ([]domain.Item, error) {
	return s.catalog.Items(ctx)
}

// ItemsByCategory lists the items referencing a category.
func (s *Inventory) ItemsByCategory(ctx context.Context, categoryID string) ([]domain.Item, error) {
	return s.catalog.ItemsByCategory(ctx, categoryID)
}

// UpdateItem applies a partial edit all-or-nothing. The quantity delta is
// added unclamped; negative results are accepted here on purpose — direct
// edits model trusted corrections, and only the shipment path checks
// sufficiency. A new price must still be non-negative, and a new category
// must exist or nothing changes.
func (s *Inventory) UpdateItem(ctx context.Context, itemID string, upd domain.ItemUpdate) (*domain.Item, error) {
	if upd.Price != nil && upd.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}
	if upd.Empty() {
		return s.catalog.Item(ctx, itemID)
	}
	return s.catalog.ApplyItemUpdate(ctx, itemID, upd)
}
