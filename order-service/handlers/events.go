package handlers

import (
	"context"

	"github.com/orderflow/order-system/order-service/application"
	"github.com/orderflow/order-system/shared/events"
	"go.uber.org/zap"
)

// OrderEventHandlers routes saga outcomes back onto the order record
type OrderEventHandlers struct {
	projectOutcome *application.ProjectOrderOutcome
	logger         *zap.Logger
}

// NewOrderEventHandlers creates new order event handlers
func NewOrderEventHandlers(projectOutcome *application.ProjectOrderOutcome, logger *zap.Logger) *OrderEventHandlers {
	return &OrderEventHandlers{
		projectOutcome: projectOutcome,
		logger:         logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *OrderEventHandlers) HandlerID() string {
	return "order-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *OrderEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	if event.AggregateID == "" {
		h.logger.Error("dropping event without aggregate ID",
			zap.String("topic", event.Topic.String()))
		return nil
	}

	cmd := &application.OrderOutcomeCommand{OrderID: event.AggregateID}

	switch event.Topic {
	case events.OrderCompensationTopic:
		return h.projectOutcome.Cancel(ctx, cmd)
	case events.NotifySuccessTopic:
		return h.projectOutcome.Complete(ctx, cmd)
	case events.NotifyFailureTopic:
		return h.projectOutcome.Fail(ctx, cmd)
	default:
		return nil
	}
}
