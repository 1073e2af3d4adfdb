package application

import (
	"context"

	"github.com/orderflow/order-system/payment-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// ErrPaymentNotFound signals a lookup for an order with no recorded payment
var ErrPaymentNotFound = errors.New("payment not found")

// GetPaymentQuery requests the payment recorded for an order
type GetPaymentQuery struct {
	OrderID string `json:"order_id"`
}

// GetPayment retrieves a payment by order ID
type GetPayment struct {
	paymentRepository domain.PaymentRepository
}

// NewGetPayment creates a new GetPayment use case
func NewGetPayment(paymentRepository domain.PaymentRepository) *GetPayment {
	return &GetPayment{paymentRepository: paymentRepository}
}

// Execute retrieves the payment
func (uc *GetPayment) Execute(ctx context.Context, query *GetPaymentQuery) (*domain.Payment, error) {
	orderID, err := models.NewID(query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	payment, err := uc.paymentRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load payment")
	}

	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	return payment, nil
}
