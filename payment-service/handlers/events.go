package handlers

import (
	"context"

	"github.com/orderflow/order-system/payment-service/application"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"go.uber.org/zap"
)

// PaymentEventHandlers routes charge and refund commands to the matching
// use case
type PaymentEventHandlers struct {
	processPayment *application.ProcessPayment
	refundPayment  *application.RefundPayment
	logger         *zap.Logger
}

// NewPaymentEventHandlers creates new payment event handlers
func NewPaymentEventHandlers(
	processPayment *application.ProcessPayment,
	refundPayment *application.RefundPayment,
	logger *zap.Logger,
) *PaymentEventHandlers {
	return &PaymentEventHandlers{
		processPayment: processPayment,
		refundPayment:  refundPayment,
		logger:         logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *PaymentEventHandlers) HandlerID() string {
	return "payment-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *PaymentEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.Topic {
	case events.PaymentCommandTopic:
		var order models.Order
		if err := event.UnmarshalPayload(&order); err != nil {
			h.logger.Error("dropping malformed charge command",
				zap.String("aggregate_id", event.AggregateID.String()), zap.Error(err))
			return nil
		}
		return h.processPayment.Execute(ctx, &application.ProcessPaymentCommand{Order: order})

	case events.PaymentCompensationTopic:
		if event.AggregateID == "" {
			h.logger.Error("dropping refund command without order ID")
			return nil
		}
		return h.refundPayment.Execute(ctx, &application.RefundPaymentCommand{
			OrderID: event.AggregateID,
		})

	default:
		return nil
	}
}
