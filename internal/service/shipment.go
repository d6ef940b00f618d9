package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mmvolkov/shop/internal/domain"
	"github.com/mmvolkov/shop/internal/infrastructure/store"
)

// MovementPublisher announces completed shipments. Publication is
// best-effort: a failed publish never rolls back or fails the shipment.
type MovementPublisher interface {
	PublishMovement(ctx context.Context, m domain.StockMovement) error
}

// Shipments processes outbound stock movements: it authenticates the caller
// by API key, then decrements stock through the store's atomic guarded
// decrement so concurrent shipments can never overdraw an item.
type Shipments struct {
	users     store.UserStore
	catalog   store.CatalogStore
	publisher MovementPublisher // optional
}

// NewShipments creates a Shipments service. publisher may be nil to disable
// movement notifications.
func NewShipments(users store.UserStore, catalog store.CatalogStore, publisher MovementPublisher) *Shipments {
	return &Shipments{users: users, catalog: catalog, publisher: publisher}
}

// Ship decrements an item's stock by quantity on behalf of the API key's
// owner. The requested quantity must be positive. On insufficiency the stock
// is left exactly as it was.
func (s *Shipments) Ship(ctx context.Context, apiKey, itemID string, quantity int) (*domain.Item, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	user, err := s.users.UserByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidAPIKey
		}
		return nil, fmt.Errorf("resolve api key: %w", err)
	}

	item, err := s.catalog.DecrementItemQuantity(ctx, itemID, quantity)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		movement := domain.StockMovement{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Username:  user.Username,
			Quantity:  quantity,
			Remaining: item.Quantity,
			ShippedAt: time.Now(),
		}
		if err := s.publisher.PublishMovement(ctx, movement); err != nil {
			log.Printf("[Shipments] Failed to publish movement for item %s: %v", item.ID, err)
		}
	}

	return item, nil
}
