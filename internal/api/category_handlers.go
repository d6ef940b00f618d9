package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/mmvolkov/shop/internal/domain"
	"github.com/mmvolkov/shop/internal/service"
)

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse is a category in API responses.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func categoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

// CreateCategory creates a new category.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	category, err := h.inventory.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			respondJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrDuplicateCategory):
			respondJSONError(w, "Category name already exists", http.StatusConflict)
		default:
			log.Printf("[API] Error creating category: %v", err)
			respondJSONError(w, "Failed to create category", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, categoryResponse(category))
}

// ListCategories returns all categories.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.inventory.Categories(r.Context())
	if err != nil {
		log.Printf("[API] Error listing categories: %v", err)
		respondJSONError(w, "Failed to fetch categories", http.StatusInternalServerError)
		return
	}

	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = categoryResponse(&categories[i])
	}
	respondJSON(w, http.StatusOK, out)
}

// GetCategory returns one category by ID.
func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/categories/")

	category, err := h.inventory.Category(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			respondJSONError(w, "Category not found", http.StatusNotFound)
			return
		}
		log.Printf("[API] Error getting category: %v", err)
		respondJSONError(w, "Failed to fetch category", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, categoryResponse(category))
}
