package application

import (
	"context"

	"github.com/orderflow/order-system/inventory-service/domain"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/orderflow/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ReserveInventoryCommand carries an order.inventory reserve command
type ReserveInventoryCommand struct {
	Order models.Order `json:"order"`
}

// ReserveInventory holds stock for every order line, then reports the
// outcome to the saga: saga.inventory.reserved when everything is covered,
// saga.compensation when it is not. A shortage is a business outcome, not a
// processing failure; the triggering message is acknowledged either way.
type ReserveInventory struct {
	inventoryRepository domain.InventoryRepository
	eventPublisher      events.Publisher
}

// NewReserveInventory creates a new ReserveInventory use case
func NewReserveInventory(
	inventoryRepository domain.InventoryRepository,
	eventPublisher events.Publisher,
) *ReserveInventory {
	return &ReserveInventory{
		inventoryRepository: inventoryRepository,
		eventPublisher:      eventPublisher,
	}
}

// Execute reserves stock for the order
func (uc *ReserveInventory) Execute(ctx context.Context, cmd *ReserveInventoryCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "reserve_inventory",
		trace.WithAttributes(attribute.String("order_id", cmd.Order.OrderID.String())),
	)
	defer span.End()

	if err := cmd.Order.Validate(); err != nil {
		return errors.Wrap(err, "invalid order payload")
	}

	err := uc.inventoryRepository.ReserveOrder(ctx, cmd.Order)
	if errors.Is(err, domain.ErrInsufficientStock) {
		return uc.reportShortage(ctx, cmd.Order)
	}
	if err != nil {
		return errors.Wrap(err, "failed to reserve stock")
	}

	outcome := events.NewEvent(cmd.Order.OrderID, events.InventoryReservedTopic, cmd.Order).
		WithCorrelationID(cmd.Order.OrderID)

	if err := uc.eventPublisher.Publish(ctx, outcome); err != nil {
		return errors.Wrap(err, "failed to publish reservation outcome")
	}

	telemetry.RecordCounter(ctx, "inventory_reservations_total", "Orders fully reserved", 1)

	return nil
}

func (uc *ReserveInventory) reportShortage(ctx context.Context, order models.Order) error {
	trigger := events.NewEvent(order.OrderID, events.CompensationTopic, order).
		WithCorrelationID(order.OrderID).
		WithMetadata("reason", "insufficient inventory")

	if err := uc.eventPublisher.Publish(ctx, trigger); err != nil {
		return errors.Wrap(err, "failed to publish compensation trigger")
	}

	telemetry.RecordCounter(ctx, "inventory_shortages_total", "Orders refused for stock", 1)

	return nil
}
