package handlers

import (
	"context"

	"github.com/orderflow/order-system/notification-service/application"
	"github.com/orderflow/order-system/notification-service/domain"
	"github.com/orderflow/order-system/shared/events"
	"go.uber.org/zap"
)

// NotificationEventHandlers turns terminal order outcomes into customer
// notifications
type NotificationEventHandlers struct {
	recordNotification *application.RecordNotification
	logger             *zap.Logger
}

// NewNotificationEventHandlers creates new notification event handlers
func NewNotificationEventHandlers(
	recordNotification *application.RecordNotification,
	logger *zap.Logger,
) *NotificationEventHandlers {
	return &NotificationEventHandlers{
		recordNotification: recordNotification,
		logger:             logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *NotificationEventHandlers) HandlerID() string {
	return "notification-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *NotificationEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	var outcome domain.Outcome
	switch event.Topic {
	case events.NotifySuccessTopic:
		outcome = domain.OutcomeSuccess
	case events.NotifyFailureTopic:
		outcome = domain.OutcomeFailure
	default:
		return nil
	}

	if event.AggregateID == "" {
		h.logger.Error("dropping outcome event without order ID",
			zap.String("topic", event.Topic.String()))
		return nil
	}

	reason, _ := event.Metadata.Get("reason")

	return h.recordNotification.Execute(ctx, &application.RecordNotificationCommand{
		OrderID: event.AggregateID,
		Outcome: outcome,
		Reason:  reason,
	})
}
