package domain

import (
	"context"
	"time"

	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// ErrOrderNotFound signals a lookup for an order that was never placed
var ErrOrderNotFound = errors.New("order not found")

// Order aggregate root. The embedded record is the same payload the saga
// carries; this service owns its terminal status.
type Order struct {
	models.Order

	events []*events.Event
}

// PlaceOrder factory method. A placed order is pending and hands itself to
// the saga via saga.start.
func PlaceOrder(userID models.ID, items []models.OrderItem) (*Order, error) {
	record, err := models.NewOrder(userID, items)
	if err != nil {
		return nil, err
	}

	order := &Order{Order: *record}

	order.recordEvent(events.NewEvent(order.OrderID, events.SagaStartTopic, order.Order).
		WithCorrelationID(order.OrderID))

	return order, nil
}

// Cancel moves the order to cancelled after its saga compensated. Only a
// pending order moves; a redelivered compensation finds nothing to do.
func (o *Order) Cancel() bool {
	if o.Status != models.OrderStatusPending {
		return false
	}

	o.Status = models.OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return true
}

// Complete marks the order fulfilled after the saga's success notification
func (o *Order) Complete() bool {
	if o.Status != models.OrderStatusPending {
		return false
	}

	o.Status = models.OrderStatusCompleted
	o.UpdatedAt = time.Now()
	return true
}

// MarkFailed records the saga's failure notification
func (o *Order) MarkFailed() bool {
	if o.Status != models.OrderStatusPending {
		return false
	}

	o.Status = models.OrderStatusFailed
	o.UpdatedAt = time.Now()
	return true
}

// Events returns recorded domain events
func (o *Order) Events() []*events.Event {
	return o.events
}

// ClearEvents clears recorded events
func (o *Order) ClearEvents() {
	o.events = make([]*events.Event, 0)
}

func (o *Order) recordEvent(event *events.Event) {
	o.events = append(o.events, event)
}

// OrderRepository persists orders. UpdateStatus moves an order between
// statuses conditionally so late or duplicated saga notifications cannot
// overwrite a terminal state.
type OrderRepository interface {
	Insert(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, orderID models.ID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID models.ID, from, to models.OrderStatus) (bool, error)
}
