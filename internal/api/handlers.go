package api

import (
	"encoding/json"
	"net/http"

	"github.com/mmvolkov/shop/internal/domain"
	"github.com/mmvolkov/shop/internal/service"
)

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	auth      *service.Auth
	inventory *service.Inventory
	shipments *service.Shipments
}

// NewHandlers creates the handler set.
func NewHandlers(auth *service.Auth, inventory *service.Inventory, shipments *service.Shipments) *Handlers {
	return &Handlers{auth: auth, inventory: inventory, shipments: shipments}
}

// ItemResponse is an item in API responses. The price is rendered at fixed
// currency precision; decimal's default string form trims trailing zeros.
type ItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	CategoryID  string `json:"category_id"`
}

func itemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price.StringFixed(2),
		Quantity:    item.Quantity,
		CategoryID:  item.CategoryID,
	}
}

func itemResponses(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = itemResponse(&items[i])
	}
	return out
}

// Health is a liveness probe.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}
