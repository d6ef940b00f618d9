package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmvolkov/shop/internal/domain"
	"github.com/mmvolkov/shop/internal/service"
)

// CreateItemRequest is the request body for creating an item.
type CreateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  string          `json:"category_id"`
}

// UpdateItemRequest is the partial-edit request body. The quantity field is
// a delta added to the current stock, not an absolute value.
type UpdateItemRequest struct {
	Quantity   *int             `json:"quantity,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
}

// CreateItem creates a new item in an existing category.
func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.inventory.CreateItem(r.Context(), req.Name, req.Description,
		req.Price, req.Quantity, req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired),
			errors.Is(err, service.ErrCategoryRequired),
			errors.Is(err, domain.ErrNegativePrice):
			respondJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrCategoryNotFound):
			respondJSONError(w, "Category not found", http.StatusNotFound)
		default:
			log.Printf("[API] Error creating item: %v", err)
			respondJSONError(w, "Failed to create item", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, itemResponse(item))
}

// ListItems returns all items.
func (h *Handlers) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.Items(r.Context())
	if err != nil {
		log.Printf("[API] Error listing items: %v", err)
		respondJSONError(w, "Failed to fetch items", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, itemResponses(items))
}

// ListItemsByCategory returns the items referencing a category.
func (h *Handlers) ListItemsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimPrefix(r.URL.Path, "/api/items/category/")

	items, err := h.inventory.ItemsByCategory(r.Context(), categoryID)
	if err != nil {
		log.Printf("[API] Error listing items by category: %v", err)
		respondJSONError(w, "Failed to fetch items", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, itemResponses(items))
}

// GetItem returns one item by ID.
func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/items/")

	item, err := h.inventory.Item(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			respondJSONError(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("[API] Error getting item: %v", err)
		respondJSONError(w, "Failed to fetch item", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, itemResponse(item))
}

// UpdateItem applies a partial edit to an item.
func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/items/")

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.inventory.UpdateItem(r.Context(), id, domain.ItemUpdate{
		QuantityDelta: req.Quantity,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			respondJSONError(w, "Item not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrCategoryNotFound):
			respondJSONError(w, "Category not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNegativePrice):
			respondJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("[API] Error updating item: %v", err)
			respondJSONError(w, "Failed to update item", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, itemResponse(item))
}
