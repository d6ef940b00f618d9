package domain

import "time"

// StockMovement describes a completed outbound shipment. It is a
// notification, not a ledger entry: the shipment itself persists nothing
// beyond the decremented stock count.
type StockMovement struct {
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Username  string    `json:"username"`
	Quantity  int       `json:"quantity"`
	Remaining int       `json:"remaining"`
	ShippedAt time.Time `json:"shipped_at"`
}
