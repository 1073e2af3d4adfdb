package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderflow/order-system/payment-service/application"
	"github.com/pkg/errors"
)

// PaymentHandlers contains payment HTTP handlers
type PaymentHandlers struct {
	getPayment *application.GetPayment
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(getPayment *application.GetPayment) *PaymentHandlers {
	return &PaymentHandlers{getPayment: getPayment}
}

// GetPayment handles payment lookups by order ID
func (h *PaymentHandlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	payment, err := h.getPayment.Execute(r.Context(), &application.GetPaymentQuery{OrderID: orderID})
	if err != nil {
		if errors.Is(err, application.ErrPaymentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/{orderID}", h.GetPayment)
	})
}
