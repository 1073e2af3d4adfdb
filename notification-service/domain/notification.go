package domain

import (
	"context"

	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// Outcome is the terminal result a notification reports for an order
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// ErrNotificationExists signals a redelivered outcome the customer was
// already told about
var ErrNotificationExists = errors.New("notification already recorded for order")

// Notification is one message delivered to a customer about their order.
// One row per order and outcome keeps a redelivered event from notifying
// the customer twice.
type Notification struct {
	ID         models.ID
	OrderID    models.ID
	Outcome    Outcome
	Reason     string
	Timestamps models.Timestamps
}

// RecordNotification captures an order outcome to tell the customer about
func RecordNotification(orderID models.ID, outcome Outcome, reason string) *Notification {
	return &Notification{
		ID:         models.GenerateUUID(),
		OrderID:    orderID,
		Outcome:    outcome,
		Reason:     reason,
		Timestamps: models.NewTimestamps(),
	}
}

// NotificationRepository persists delivered notifications. Insert refuses a
// second row for the same order and outcome with ErrNotificationExists.
type NotificationRepository interface {
	Insert(ctx context.Context, notification *Notification) error
	FindByOrderID(ctx context.Context, orderID models.ID) ([]Notification, error)
}
