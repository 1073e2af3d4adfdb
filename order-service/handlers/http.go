package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderflow/order-system/order-service/application"
	"github.com/orderflow/order-system/order-service/domain"
	"github.com/pkg/errors"
)

// OrderHandlers contains order HTTP handlers
type OrderHandlers struct {
	placeOrder *application.PlaceOrder
	getOrder   *application.GetOrder
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(placeOrder *application.PlaceOrder, getOrder *application.GetOrder) *OrderHandlers {
	return &OrderHandlers{
		placeOrder: placeOrder,
		getOrder:   getOrder,
	}
}

// PlaceOrder handles order placement requests
func (h *OrderHandlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var cmd application.PlaceOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.placeOrder.Execute(r.Context(), &cmd)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetOrder handles order retrieval requests
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	order, err := h.getOrder.Execute(r.Context(), &application.GetOrderQuery{OrderID: orderID})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// RegisterRoutes registers order routes
func (h *OrderHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.PlaceOrder)
		r.Get("/{id}", h.GetOrder)
	})
}
