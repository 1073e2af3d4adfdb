package handlers

import (
	"context"

	"github.com/orderflow/order-system/inventory-service/application"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"go.uber.org/zap"
)

// InventoryEventHandlers routes reserve and release commands to the
// matching use case
type InventoryEventHandlers struct {
	reserveInventory *application.ReserveInventory
	releaseInventory *application.ReleaseInventory
	logger           *zap.Logger
}

// NewInventoryEventHandlers creates new inventory event handlers
func NewInventoryEventHandlers(
	reserveInventory *application.ReserveInventory,
	releaseInventory *application.ReleaseInventory,
	logger *zap.Logger,
) *InventoryEventHandlers {
	return &InventoryEventHandlers{
		reserveInventory: reserveInventory,
		releaseInventory: releaseInventory,
		logger:           logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *InventoryEventHandlers) HandlerID() string {
	return "inventory-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *InventoryEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.Topic {
	case events.InventoryCommandTopic:
		var order models.Order
		if err := event.UnmarshalPayload(&order); err != nil {
			h.logger.Error("dropping malformed reserve command",
				zap.String("aggregate_id", event.AggregateID.String()), zap.Error(err))
			return nil
		}
		return h.reserveInventory.Execute(ctx, &application.ReserveInventoryCommand{Order: order})

	case events.InventoryCompensationTopic:
		if event.AggregateID == "" {
			h.logger.Error("dropping release command without order ID")
			return nil
		}
		return h.releaseInventory.Execute(ctx, &application.ReleaseInventoryCommand{
			OrderID: event.AggregateID,
		})

	default:
		return nil
	}
}
