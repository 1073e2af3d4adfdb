package application

import (
	"context"

	"github.com/orderflow/order-system/order-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// GetOrderQuery requests a single order
type GetOrderQuery struct {
	OrderID string `json:"order_id"`
}

// GetOrder retrieves an order by ID
type GetOrder struct {
	orderRepository domain.OrderRepository
}

// NewGetOrder creates a new GetOrder use case
func NewGetOrder(orderRepository domain.OrderRepository) *GetOrder {
	return &GetOrder{orderRepository: orderRepository}
}

// Execute retrieves the order
func (uc *GetOrder) Execute(ctx context.Context, query *GetOrderQuery) (*models.Order, error) {
	orderID, err := models.NewID(query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order")
	}

	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	return order, nil
}
