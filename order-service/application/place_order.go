package application

import (
	"context"

	"github.com/orderflow/order-system/order-service/domain"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/orderflow/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OrderItemInput is one requested order line
type OrderItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Currency  string `json:"currency"`
}

// PlaceOrderCommand carries an order placement request
type PlaceOrderCommand struct {
	UserID string           `json:"user_id"`
	Items  []OrderItemInput `json:"items"`
}

// PlaceOrderResponse is returned after a successful placement
type PlaceOrderResponse struct {
	OrderID string             `json:"order_id"`
	Status  models.OrderStatus `json:"status"`
	Total   models.Money       `json:"total"`
}

// PlaceOrder persists a pending order and hands it to the saga
type PlaceOrder struct {
	orderRepository domain.OrderRepository
	eventPublisher  events.Publisher
}

// NewPlaceOrder creates a new PlaceOrder use case
func NewPlaceOrder(orderRepository domain.OrderRepository, eventPublisher events.Publisher) *PlaceOrder {
	return &PlaceOrder{
		orderRepository: orderRepository,
		eventPublisher:  eventPublisher,
	}
}

// Execute places the order
func (uc *PlaceOrder) Execute(ctx context.Context, cmd *PlaceOrderCommand) (*PlaceOrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "place_order",
		trace.WithAttributes(attribute.String("user_id", cmd.UserID)),
	)
	defer span.End()

	userID, err := models.NewID(cmd.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}

	items := make([]models.OrderItem, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		productID, err := models.NewID(item.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid product ID")
		}
		items = append(items, models.OrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: models.NewMoney(item.UnitPrice, item.Currency),
		})
	}

	order, err := domain.PlaceOrder(userID, items)
	if err != nil {
		return nil, err
	}

	if err := uc.orderRepository.Insert(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}

	if err := uc.eventPublisher.Publish(ctx, order.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish saga start")
	}
	order.ClearEvents()

	telemetry.RecordCounter(ctx, "orders_placed_total", "Orders placed", 1)

	return &PlaceOrderResponse{
		OrderID: order.OrderID.String(),
		Status:  order.Status,
		Total:   order.Total(),
	}, nil
}
