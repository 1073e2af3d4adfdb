package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orderflow/order-system/notification-service/application"
)

// NotificationHandlers contains notification HTTP handlers
type NotificationHandlers struct {
	getNotifications *application.GetNotifications
}

// NewNotificationHandlers creates new notification handlers
func NewNotificationHandlers(getNotifications *application.GetNotifications) *NotificationHandlers {
	return &NotificationHandlers{getNotifications: getNotifications}
}

// GetNotifications handles notification lookups by order ID
func (h *NotificationHandlers) GetNotifications(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	notifications, err := h.getNotifications.Execute(r.Context(), &application.GetNotificationsQuery{OrderID: orderID})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notifications)
}

// RegisterRoutes registers notification routes
func (h *NotificationHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/{orderID}", h.GetNotifications)
	})
}
