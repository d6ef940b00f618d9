package notification

import (
	"context"
	"log"

	"github.com/mmvolkov/shop/internal/domain"
)

// AlertSender delivers a low-stock alert. Satisfied by email.Service.
type AlertSender interface {
	SendLowStockAlert(to, itemName string, remaining, threshold int) error
}

// Handler watches the stock-movement stream and raises an alert whenever a
// shipment drags an item's remaining stock below the threshold.
type Handler struct {
	sender    AlertSender // optional; log-only when nil
	recipient string
	threshold int
}

// NewHandler creates a notification handler.
func NewHandler(sender AlertSender, recipient string, threshold int) *Handler {
	return &Handler{sender: sender, recipient: recipient, threshold: threshold}
}

// HandleMovement logs the movement and sends a low-stock alert when the
// remaining stock crosses the threshold.
func (h *Handler) HandleMovement(_ context.Context, m domain.StockMovement) error {
	log.Printf("[Notifier] Shipped %d x %s for %s, %d remaining",
		m.Quantity, m.ItemName, m.Username, m.Remaining)

	if m.Remaining >= h.threshold {
		return nil
	}

	log.Printf("[Notifier] LOW STOCK: %s has %d units left (threshold %d)",
		m.ItemName, m.Remaining, h.threshold)

	if h.sender == nil || h.recipient == "" {
		return nil
	}
	return h.sender.SendLowStockAlert(h.recipient, m.ItemName, m.Remaining, h.threshold)
}
