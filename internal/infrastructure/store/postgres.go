package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mmvolkov/shop/internal/domain"
)

const defaultQueryTimeout = 5 * time.Second

// Postgres implements UserStore and CatalogStore on top of PostgreSQL.
// Uniqueness and referential integrity live in the schema; quantity
// arithmetic runs inside transactions or guarded single statements so the
// quantity >= 0 invariant survives concurrent writers.
type Postgres struct {
	db      *sql.DB
	timeout time.Duration
}

// ConnectPostgres opens and pings a PostgreSQL connection.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// NewPostgres creates a Postgres store. A non-positive timeout falls back to
// the default; every statement runs under this bound so a stuck database
// surfaces as an error, never a hang.
func NewPostgres(db *sql.DB, timeout time.Duration) *Postgres {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Postgres{db: db, timeout: timeout}
}

// Migrate creates the schema if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			api_key       TEXT NOT NULL,
			roles         TEXT[] NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT users_username_key UNIQUE (username),
			CONSTRAINT users_api_key_key UNIQUE (api_key)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT categories_name_key UNIQUE (name)
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			quantity    INTEGER NOT NULL DEFAULT 0,
			category_id TEXT NOT NULL REFERENCES categories(id),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS items_category_id_idx ON items (category_id)`,
	}

	for _, stmt := range stmts {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (p *Postgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.timeout)
}

// --- UserStore ---

func (p *Postgres) CreateUser(ctx context.Context, user *domain.User) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, api_key, roles, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.PasswordHash, user.APIKey,
		pq.Array(roles), user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_api_key_key":
				return domain.ErrDuplicateAPIKey
			default:
				return domain.ErrUsernameTaken
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (p *Postgres) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return p.userBy(ctx, "username", username)
}

func (p *Postgres) UserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	return p.userBy(ctx, "api_key", apiKey)
}

func (p *Postgres) userBy(ctx context.Context, column, value string) (*domain.User, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var (
		user  domain.User
		roles []string
	)
	err := p.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, api_key, roles, created_at
		FROM users WHERE `+column+` = $1`, value,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.APIKey,
		pq.Array(&roles), &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by %s: %w", column, err)
	}

	user.Roles = make([]domain.Role, len(roles))
	for i, r := range roles {
		user.Roles[i] = domain.Role(r)
	}
	return &user, nil
}

func (p *Postgres) UsernameExists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// --- CatalogStore ---

func (p *Postgres) CreateCategory(ctx context.Context, category *domain.Category) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)`,
		category.ID, category.Name, category.Description, category.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateCategory
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (p *Postgres) Category(ctx context.Context, id string) (*domain.Category, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var c domain.Category
	err := p.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at
		FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return &c, nil
}

func (p *Postgres) Categories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, description, created_at
		FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (p *Postgres) CreateItem(ctx context.Context, item *domain.Item) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO items (id, name, description, price, quantity, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.Name, item.Description, item.Price, item.Quantity,
		item.CategoryID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

const itemColumns = `id, name, description, price, quantity, category_id, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
		&item.Quantity, &item.CategoryID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (p *Postgres) Item(ctx context.Context, id string) (*domain.Item, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	item, err := scanItem(p.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

func (p *Postgres) Items(ctx context.Context) ([]domain.Item, error) {
	return p.queryItems(ctx, `SELECT `+itemColumns+` FROM items ORDER BY name`)
}

func (p *Postgres) ItemsByCategory(ctx context.Context, categoryID string) ([]domain.Item, error) {
	return p.queryItems(ctx,
		`SELECT `+itemColumns+` FROM items WHERE category_id = $1 ORDER BY name`,
		categoryID)
}

func (p *Postgres) queryItems(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ApplyItemUpdate locks the item row, validates the category reference and
// writes every requested change in one transaction. Either every field lands
// or none does.
func (p *Postgres) ApplyItemUpdate(ctx context.Context, itemID string, upd domain.ItemUpdate) (*domain.Item, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	item, err := scanItem(tx.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, itemID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock item: %w", err)
	}

	if upd.CategoryID != nil {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, *upd.CategoryID,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("check category: %w", err)
		}
		if !exists {
			return nil, domain.ErrCategoryNotFound
		}
		item.CategoryID = *upd.CategoryID
	}

	if upd.QuantityDelta != nil {
		item.Quantity += *upd.QuantityDelta
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	item.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx, `
		UPDATE items SET price = $1, quantity = $2, category_id = $3, updated_at = $4
		WHERE id = $5`,
		item.Price, item.Quantity, item.CategoryID, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit item update: %w", err)
	}
	return item, nil
}

// DecrementItemQuantity runs the read-compare-decrement as a single guarded
// statement: the quantity >= n predicate makes two concurrent shipments
// serialize on the row, so stock can never be jointly overdrawn.
func (p *Postgres) DecrementItemQuantity(ctx context.Context, itemID string, quantity int) (*domain.Item, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	item, err := scanItem(p.db.QueryRowContext(ctx, `
		UPDATE items SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2 AND quantity >= $1
		RETURNING `+itemColumns,
		quantity, itemID))
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("decrement item: %w", err)
	}

	// No row updated: either the item is missing or stock was insufficient.
	var exists bool
	if err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, itemID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return nil, domain.ErrItemNotFound
	}
	return nil, domain.ErrInsufficientQuantity
}
