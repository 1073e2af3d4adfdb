package application

import (
	"context"

	"github.com/orderflow/order-system/notification-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/orderflow/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordNotificationCommand carries an order.notify.success or
// order.notify.failure event
type RecordNotificationCommand struct {
	OrderID models.ID      `json:"order_id"`
	Outcome domain.Outcome `json:"outcome"`
	Reason  string         `json:"reason"`
}

// RecordNotification tells the customer how their order ended, exactly once
// per order and outcome. A redelivered event finds the recorded row and is
// absorbed silently.
type RecordNotification struct {
	notificationRepository domain.NotificationRepository
	logger                 *zap.Logger
}

// NewRecordNotification creates a new RecordNotification use case
func NewRecordNotification(notificationRepository domain.NotificationRepository, logger *zap.Logger) *RecordNotification {
	return &RecordNotification{
		notificationRepository: notificationRepository,
		logger:                 logger,
	}
}

// Execute records and delivers the notification
func (uc *RecordNotification) Execute(ctx context.Context, cmd *RecordNotificationCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "record_notification",
		trace.WithAttributes(
			attribute.String("order_id", cmd.OrderID.String()),
			attribute.String("outcome", string(cmd.Outcome)),
		),
	)
	defer span.End()

	if cmd.OrderID == "" {
		return errors.New("order ID is required")
	}
	if cmd.Outcome != domain.OutcomeSuccess && cmd.Outcome != domain.OutcomeFailure {
		return errors.New("unknown notification outcome")
	}

	notification := domain.RecordNotification(cmd.OrderID, cmd.Outcome, cmd.Reason)

	err := uc.notificationRepository.Insert(ctx, notification)
	if errors.Is(err, domain.ErrNotificationExists) {
		uc.logger.Debug("customer already notified",
			zap.String("order_id", cmd.OrderID.String()),
			zap.String("outcome", string(cmd.Outcome)))
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to record notification")
	}

	// Delivery channel stands in for email or push. The recorded row is
	// what guards against telling the customer twice.
	uc.deliver(notification)

	telemetry.RecordCounter(ctx, "notifications_sent_total", "Customer notifications sent", 1,
		attribute.String("outcome", string(cmd.Outcome)))

	return nil
}

func (uc *RecordNotification) deliver(notification *domain.Notification) {
	fields := []zap.Field{
		zap.String("order_id", notification.OrderID.String()),
		zap.String("outcome", string(notification.Outcome)),
	}
	if notification.Reason != "" {
		fields = append(fields, zap.String("reason", notification.Reason))
	}

	uc.logger.Info("notified customer", fields...)
}
