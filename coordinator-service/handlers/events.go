package handlers

import (
	"context"

	"github.com/orderflow/order-system/coordinator-service/application"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SagaEventHandlers routes the coordinator's inbound routing keys to the
// matching use case. Every consumed event is also appended to the audit
// stream; audit failures are logged but never block the transition.
type SagaEventHandlers struct {
	startSaga                *application.StartSaga
	processInventoryReserved *application.ProcessInventoryReserved
	processPaymentApproved   *application.ProcessPaymentApproved
	compensateSaga           *application.CompensateSaga
	eventStore               events.EventStore
	logger                   *zap.Logger
}

// NewSagaEventHandlers creates new saga event handlers
func NewSagaEventHandlers(
	startSaga *application.StartSaga,
	processInventoryReserved *application.ProcessInventoryReserved,
	processPaymentApproved *application.ProcessPaymentApproved,
	compensateSaga *application.CompensateSaga,
	eventStore events.EventStore,
	logger *zap.Logger,
) *SagaEventHandlers {
	return &SagaEventHandlers{
		startSaga:                startSaga,
		processInventoryReserved: processInventoryReserved,
		processPaymentApproved:   processPaymentApproved,
		compensateSaga:           compensateSaga,
		eventStore:               eventStore,
		logger:                   logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *SagaEventHandlers) HandlerID() string {
	return "saga-coordinator-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *SagaEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	h.audit(ctx, event)

	switch event.Topic {
	case events.SagaStartTopic:
		return h.handleSagaStart(ctx, event)
	case events.InventoryReservedTopic:
		return h.handleInventoryReserved(ctx, event)
	case events.PaymentApprovedTopic:
		return h.handlePaymentApproved(ctx, event)
	case events.CompensationTopic:
		return h.handleCompensation(ctx, event)
	default:
		// Not a coordinator topic, ignore.
		return nil
	}
}

func (h *SagaEventHandlers) handleSagaStart(ctx context.Context, event *events.Event) error {
	order, err := h.parseOrder(event)
	if err != nil {
		h.logger.Error("dropping malformed saga.start",
			zap.String("aggregate_id", event.AggregateID.String()), zap.Error(err))
		return nil
	}

	return h.startSaga.Execute(ctx, &application.StartSagaCommand{Order: order})
}

func (h *SagaEventHandlers) handleInventoryReserved(ctx context.Context, event *events.Event) error {
	order, err := h.parseOrder(event)
	if err != nil {
		h.logger.Error("dropping malformed inventory outcome",
			zap.String("aggregate_id", event.AggregateID.String()), zap.Error(err))
		return nil
	}

	return h.processInventoryReserved.Execute(ctx, &application.ProcessInventoryReservedCommand{
		OrderID: order.OrderID,
		Order:   order,
	})
}

func (h *SagaEventHandlers) handlePaymentApproved(ctx context.Context, event *events.Event) error {
	order, err := h.parseOrder(event)
	if err != nil {
		h.logger.Error("dropping malformed payment outcome",
			zap.String("aggregate_id", event.AggregateID.String()), zap.Error(err))
		return nil
	}

	return h.processPaymentApproved.Execute(ctx, &application.ProcessPaymentApprovedCommand{
		OrderID: order.OrderID,
		Order:   order,
	})
}

func (h *SagaEventHandlers) handleCompensation(ctx context.Context, event *events.Event) error {
	order, err := h.parseOrder(event)
	if err != nil {
		h.logger.Error("dropping malformed compensation trigger",
			zap.String("aggregate_id", event.AggregateID.String()), zap.Error(err))
		return nil
	}

	reason, _ := event.Metadata.Get("reason")

	return h.compensateSaga.Execute(ctx, &application.CompensateSagaCommand{
		OrderID: order.OrderID,
		Order:   order,
		Reason:  reason,
	})
}

func (h *SagaEventHandlers) parseOrder(event *events.Event) (models.Order, error) {
	var order models.Order
	if err := event.UnmarshalPayload(&order); err != nil {
		return models.Order{}, errors.Wrap(err, "failed to unmarshal order payload")
	}

	if order.OrderID == "" {
		order.OrderID = event.AggregateID
	}
	if order.OrderID == "" {
		return models.Order{}, errors.New("message without order ID")
	}

	return order, nil
}

func (h *SagaEventHandlers) audit(ctx context.Context, event *events.Event) {
	if h.eventStore == nil {
		return
	}
	if err := h.eventStore.Append(ctx, event); err != nil {
		h.logger.Warn("failed to append event to audit stream",
			zap.String("topic", event.Topic.String()),
			zap.String("aggregate_id", event.AggregateID.String()),
			zap.Error(err))
	}
}
