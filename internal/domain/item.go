package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry with a stock count. Quantity never goes below zero
// through the shipment path; price is a fixed-point decimal, never a float.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemUpdate is the intent for a partial item edit. Nil fields are left
// untouched; the whole update is applied atomically or not at all.
//
// QuantityDelta is added to the current quantity and is deliberately not
// clamped at zero: direct edits model corrections and write-offs, which
// operators are trusted to make. Only the shipment path enforces
// sufficiency.
type ItemUpdate struct {
	QuantityDelta *int
	Price         *decimal.Decimal
	CategoryID    *string
}

// Empty reports whether the update carries no changes.
func (u ItemUpdate) Empty() bool {
	return u.QuantityDelta == nil && u.Price == nil && u.CategoryID == nil
}
