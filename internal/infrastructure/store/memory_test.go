package store

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmvolkov/shop/internal/domain"
)

func seedMemory(t *testing.T) *Memory {
	t.Helper()
	ctx := context.Background()
	mem := NewMemory()

	require.NoError(t, mem.CreateCategory(ctx, &domain.Category{
		ID: "cat-1", Name: "Electronics",
	}))
	require.NoError(t, mem.CreateItem(ctx, &domain.Item{
		ID: "item-1", Name: "Widget", Price: decimal.NewFromFloat(9.99),
		Quantity: 10, CategoryID: "cat-1",
	}))
	return mem
}

func TestMemory_CreateUser_UniqueUsername(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	err := mem.CreateUser(ctx, &domain.User{ID: "u1", Username: "alice", APIKey: "key-1"})
	require.NoError(t, err)

	err = mem.CreateUser(ctx, &domain.User{ID: "u2", Username: "alice", APIKey: "key-2"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// First record wins; nothing was overwritten.
	user, err := mem.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestMemory_CreateUser_UniqueAPIKey(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.CreateUser(ctx, &domain.User{ID: "u1", Username: "alice", APIKey: "key-1"}))

	err := mem.CreateUser(ctx, &domain.User{ID: "u2", Username: "bob", APIKey: "key-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicateAPIKey)
}

func TestMemory_CreateUser_ConcurrentSameUsername(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- mem.CreateUser(ctx, &domain.User{
				ID:       string(rune('a' + n)),
				Username: "alice",
				APIKey:   string(rune('A' + n)),
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	var created, rejected int
	for err := range errs {
		if err == nil {
			created++
		} else if assert.ErrorIs(t, err, domain.ErrUsernameTaken) {
			rejected++
		}
	}

	// Exactly one writer wins the race.
	assert.Equal(t, 1, created)
	assert.Equal(t, writers-1, rejected)
}

func TestMemory_UserByAPIKey(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.CreateUser(ctx, &domain.User{ID: "u1", Username: "alice", APIKey: "key-1"}))

	user, err := mem.UserByAPIKey(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = mem.UserByAPIKey(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMemory_UsernameExists(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	exists, err := mem.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, mem.CreateUser(ctx, &domain.User{ID: "u1", Username: "alice", APIKey: "key-1"}))

	exists, err = mem.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemory_CreateCategory_DuplicateName(t *testing.T) {
	mem := seedMemory(t)

	err := mem.CreateCategory(context.Background(), &domain.Category{
		ID: "cat-2", Name: "Electronics",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCategory)
}

func TestMemory_CreateItem_MissingCategory(t *testing.T) {
	mem := seedMemory(t)

	err := mem.CreateItem(context.Background(), &domain.Item{
		ID: "item-2", Name: "Gadget", CategoryID: "missing",
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestMemory_ApplyItemUpdate_AllOrNothing(t *testing.T) {
	mem := seedMemory(t)
	ctx := context.Background()

	delta := 5
	missing := "missing"
	_, err := mem.ApplyItemUpdate(ctx, "item-1", domain.ItemUpdate{
		QuantityDelta: &delta,
		CategoryID:    &missing,
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	item, err := mem.Item(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
	assert.Equal(t, "cat-1", item.CategoryID)
}

func TestMemory_ApplyItemUpdate_UnclampedDelta(t *testing.T) {
	mem := seedMemory(t)

	delta := -15
	item, err := mem.ApplyItemUpdate(context.Background(), "item-1",
		domain.ItemUpdate{QuantityDelta: &delta})
	require.NoError(t, err)
	assert.Equal(t, -5, item.Quantity)
}

func TestMemory_DecrementItemQuantity(t *testing.T) {
	mem := seedMemory(t)
	ctx := context.Background()

	item, err := mem.DecrementItemQuantity(ctx, "item-1", 4)
	require.NoError(t, err)
	assert.Equal(t, 6, item.Quantity)

	_, err = mem.DecrementItemQuantity(ctx, "item-1", 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	// Rejection left the 6 units in place.
	current, err := mem.Item(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 6, current.Quantity)

	_, err = mem.DecrementItemQuantity(ctx, "missing", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestMemory_DecrementItemQuantity_Concurrent(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.CreateCategory(ctx, &domain.Category{ID: "cat-1", Name: "Electronics"}))
	require.NoError(t, mem.CreateItem(ctx, &domain.Item{
		ID: "item-1", Name: "Widget", Quantity: 99, CategoryID: "cat-1",
	}))

	const shippers = 100
	var wg sync.WaitGroup
	errs := make(chan error, shippers)

	for i := 0; i < shippers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mem.DecrementItemQuantity(ctx, "item-1", 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes int
	for err := range errs {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 99, successes)

	item, err := mem.Item(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
}

func TestMemory_ItemsByCategory(t *testing.T) {
	mem := seedMemory(t)
	ctx := context.Background()

	require.NoError(t, mem.CreateCategory(ctx, &domain.Category{ID: "cat-2", Name: "Tools"}))
	require.NoError(t, mem.CreateItem(ctx, &domain.Item{
		ID: "item-2", Name: "Hammer", Quantity: 3, CategoryID: "cat-2",
	}))

	items, err := mem.ItemsByCategory(ctx, "cat-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "item-1", items[0].ID)

	items, err = mem.ItemsByCategory(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, items)
}
