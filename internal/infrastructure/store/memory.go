package store

import (
	"context"
	"sync"
	"time"

	"github.com/mmvolkov/shop/internal/domain"
)

// Memory implements UserStore and CatalogStore in process memory. It honors
// the same contract as Postgres (uniqueness, all-or-nothing updates, atomic
// guarded decrement) under a single mutex, which makes it the backing store
// for tests and for running the API without a database.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]*domain.User     // by ID
	byUsername map[string]string           // username -> ID
	byAPIKey   map[string]string           // api key -> ID
	categories map[string]*domain.Category // by ID
	catNames   map[string]string           // name -> ID
	items      map[string]*domain.Item     // by ID
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]*domain.User),
		byUsername: make(map[string]string),
		byAPIKey:   make(map[string]string),
		categories: make(map[string]*domain.Category),
		catNames:   make(map[string]string),
		items:      make(map[string]*domain.Item),
	}
}

// --- UserStore ---

func (m *Memory) CreateUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byUsername[user.Username]; taken {
		return domain.ErrUsernameTaken
	}
	if _, taken := m.byAPIKey[user.APIKey]; taken {
		return domain.ErrDuplicateAPIKey
	}

	u := *user
	m.users[u.ID] = &u
	m.byUsername[u.Username] = u.ID
	m.byAPIKey[u.APIKey] = u.ID
	return nil
}

func (m *Memory) UserByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *m.users[id]
	return &u, nil
}

func (m *Memory) UserByAPIKey(_ context.Context, apiKey string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byAPIKey[apiKey]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *m.users[id]
	return &u, nil
}

func (m *Memory) UsernameExists(_ context.Context, username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byUsername[username]
	return ok, nil
}

// --- CatalogStore ---

func (m *Memory) CreateCategory(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.catNames[category.Name]; taken {
		return domain.ErrDuplicateCategory
	}

	c := *category
	m.categories[c.ID] = &c
	m.catNames[c.Name] = c.ID
	return nil
}

func (m *Memory) Category(_ context.Context, id string) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	out := *c
	return &out, nil
}

func (m *Memory) Categories(_ context.Context) ([]domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *Memory) CreateItem(_ context.Context, item *domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[item.CategoryID]; !ok {
		return domain.ErrCategoryNotFound
	}

	i := *item
	m.items[i.ID] = &i
	return nil
}

func (m *Memory) Item(_ context.Context, id string) (*domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	out := *item
	return &out, nil
}

func (m *Memory) Items(_ context.Context) ([]domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *Memory) ItemsByCategory(_ context.Context, categoryID string) ([]domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Item
	for _, item := range m.items {
		if item.CategoryID == categoryID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *Memory) ApplyItemUpdate(_ context.Context, itemID string, upd domain.ItemUpdate) (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}

	// Validate before mutating so a failed lookup leaves the item untouched.
	if upd.CategoryID != nil {
		if _, ok := m.categories[*upd.CategoryID]; !ok {
			return nil, domain.ErrCategoryNotFound
		}
	}

	if upd.CategoryID != nil {
		item.CategoryID = *upd.CategoryID
	}
	if upd.QuantityDelta != nil {
		item.Quantity += *upd.QuantityDelta
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	item.UpdatedAt = time.Now()

	out := *item
	return &out, nil
}

func (m *Memory) DecrementItemQuantity(_ context.Context, itemID string, quantity int) (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	if item.Quantity < quantity {
		return nil, domain.ErrInsufficientQuantity
	}

	item.Quantity -= quantity
	item.UpdatedAt = time.Now()
	out := *item
	return &out, nil
}
