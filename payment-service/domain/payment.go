package domain

import (
	"context"

	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// PaymentStatus represents the status of a payment attempt
type PaymentStatus string

const (
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDeclined PaymentStatus = "declined"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ErrPaymentExists signals a second charge attempt for an order that already
// has a recorded outcome. The recorded outcome wins; the duplicate must
// re-announce it instead of re-deciding.
var ErrPaymentExists = errors.New("payment already recorded for order")

// Payment is the recorded outcome of charging one order. One row per order:
// a redelivered charge command can never produce a second decision.
type Payment struct {
	ID         models.ID
	OrderID    models.ID
	UserID     models.ID
	Amount     models.Money
	Status     PaymentStatus
	Timestamps models.Timestamps
}

// RecordPayment captures an authorization decision for the order
func RecordPayment(order models.Order, approved bool) *Payment {
	status := PaymentStatusDeclined
	if approved {
		status = PaymentStatusApproved
	}

	return &Payment{
		ID:         models.GenerateUUID(),
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		Amount:     order.Total(),
		Status:     status,
		Timestamps: models.NewTimestamps(),
	}
}

// Approved reports whether the charge went through
func (p *Payment) Approved() bool {
	return p.Status == PaymentStatusApproved
}

// Authorizer decides whether a charge goes through
type Authorizer interface {
	Authorize(ctx context.Context, order models.Order) (bool, error)
}

// PaymentRepository persists payment outcomes. Insert refuses a second row
// for the same order with ErrPaymentExists. MarkRefunded moves an approved
// payment to refunded and reports whether a row actually moved.
type PaymentRepository interface {
	Insert(ctx context.Context, payment *Payment) error
	FindByOrderID(ctx context.Context, orderID models.ID) (*Payment, error)
	MarkRefunded(ctx context.Context, orderID models.ID) (bool, error)
}
