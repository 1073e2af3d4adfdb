package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderflow/order-system/inventory-service/application"
	"github.com/pkg/errors"
)

// InventoryHandlers contains inventory HTTP handlers
type InventoryHandlers struct {
	getStock *application.GetStock
}

// NewInventoryHandlers creates new inventory handlers
func NewInventoryHandlers(getStock *application.GetStock) *InventoryHandlers {
	return &InventoryHandlers{getStock: getStock}
}

// GetStock handles stock level queries
func (h *InventoryHandlers) GetStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		http.Error(w, "Product ID is required", http.StatusBadRequest)
		return
	}

	stock, err := h.getStock.Execute(r.Context(), &application.GetStockQuery{ProductID: productID})
	if err != nil {
		if errors.Is(err, application.ErrStockNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stock)
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/{id}", h.GetStock)
	})
}
