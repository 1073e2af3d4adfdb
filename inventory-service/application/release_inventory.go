package application

import (
	"context"

	"github.com/orderflow/order-system/inventory-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/orderflow/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ReleaseInventoryCommand carries an order.inventory.compensation command
type ReleaseInventoryCommand struct {
	OrderID models.ID `json:"order_id"`
}

// ReleaseInventory returns an order's held stock to the pool. Redelivered
// release commands find no reservations left and do nothing.
type ReleaseInventory struct {
	inventoryRepository domain.InventoryRepository
	logger              *zap.Logger
}

// NewReleaseInventory creates a new ReleaseInventory use case
func NewReleaseInventory(inventoryRepository domain.InventoryRepository, logger *zap.Logger) *ReleaseInventory {
	return &ReleaseInventory{
		inventoryRepository: inventoryRepository,
		logger:              logger,
	}
}

// Execute releases the order's reservations
func (uc *ReleaseInventory) Execute(ctx context.Context, cmd *ReleaseInventoryCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "release_inventory",
		trace.WithAttributes(attribute.String("order_id", cmd.OrderID.String())),
	)
	defer span.End()

	if cmd.OrderID == "" {
		return errors.New("order ID is required")
	}

	released, err := uc.inventoryRepository.ReleaseOrder(ctx, cmd.OrderID)
	if err != nil {
		return errors.Wrap(err, "failed to release reservations")
	}

	if released == 0 {
		uc.logger.Debug("no reservations to release",
			zap.String("order_id", cmd.OrderID.String()))
		return nil
	}

	uc.logger.Info("released reservations",
		zap.String("order_id", cmd.OrderID.String()),
		zap.Int("count", released))

	telemetry.RecordCounter(ctx, "inventory_releases_total", "Reservations released", int64(released))

	return nil
}
