package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mmvolkov/shop/internal/domain"
)

// APIKeyHeader is the credential header for the shipment interface.
const APIKeyHeader = "X-API-KEY"

// ShipmentRequest is the shipment request body.
type ShipmentRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// ShipmentResponse confirms a processed shipment.
type ShipmentResponse struct {
	Message   string `json:"message"`
	ItemID    string `json:"item_id"`
	Remaining int    `json:"remaining"`
}

// Shipment authenticates the caller by API key and decrements stock.
func (h *Handlers) Shipment(w http.ResponseWriter, r *http.Request) {
	apiKey := r.Header.Get(APIKeyHeader)
	if apiKey == "" {
		respondJSONError(w, "Missing API key", http.StatusUnauthorized)
		return
	}

	var req ShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.shipments.Ship(r.Context(), apiKey, req.ItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			respondJSONError(w, "Quantity must be positive", http.StatusBadRequest)
		case errors.Is(err, domain.ErrInvalidAPIKey):
			respondJSONError(w, "Invalid API key", http.StatusUnauthorized)
		case errors.Is(err, domain.ErrItemNotFound):
			respondJSONError(w, "Item not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrInsufficientQuantity):
			respondJSONError(w, "Insufficient quantity", http.StatusBadRequest)
		default:
			log.Printf("[API] Shipment error: %v", err)
			respondJSONError(w, "Shipment failed", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, ShipmentResponse{
		Message:   "Shipment processed successfully",
		ItemID:    item.ID,
		Remaining: item.Quantity,
	})
}
