package application

import (
	"context"

	"github.com/orderflow/order-system/order-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/orderflow/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// OrderOutcomeCommand carries a saga outcome for the order record
type OrderOutcomeCommand struct {
	OrderID models.ID `json:"order_id"`
}

// ProjectOrderOutcome moves the order record to its terminal status when the
// saga finishes: cancelled on compensation, completed on success, failed on
// the failure notification. Transitions are conditional on the pending
// status, so duplicates and stragglers change nothing.
type ProjectOrderOutcome struct {
	orderRepository domain.OrderRepository
	logger          *zap.Logger
}

// NewProjectOrderOutcome creates a new ProjectOrderOutcome use case
func NewProjectOrderOutcome(orderRepository domain.OrderRepository, logger *zap.Logger) *ProjectOrderOutcome {
	return &ProjectOrderOutcome{
		orderRepository: orderRepository,
		logger:          logger,
	}
}

// Cancel cancels the order after its saga compensated
func (uc *ProjectOrderOutcome) Cancel(ctx context.Context, cmd *OrderOutcomeCommand) error {
	return uc.transition(ctx, cmd.OrderID, models.OrderStatusCancelled)
}

// Complete marks the order fulfilled
func (uc *ProjectOrderOutcome) Complete(ctx context.Context, cmd *OrderOutcomeCommand) error {
	return uc.transition(ctx, cmd.OrderID, models.OrderStatusCompleted)
}

// Fail records the saga's failure notification
func (uc *ProjectOrderOutcome) Fail(ctx context.Context, cmd *OrderOutcomeCommand) error {
	return uc.transition(ctx, cmd.OrderID, models.OrderStatusFailed)
}

func (uc *ProjectOrderOutcome) transition(ctx context.Context, orderID models.ID, to models.OrderStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "project_order_outcome",
		trace.WithAttributes(
			attribute.String("order_id", orderID.String()),
			attribute.String("status", string(to)),
		),
	)
	defer span.End()

	if orderID == "" {
		return errors.New("order ID is required")
	}

	moved, err := uc.orderRepository.UpdateStatus(ctx, orderID, models.OrderStatusPending, to)
	if err != nil {
		return errors.Wrap(err, "failed to update order status")
	}

	if !moved {
		// Already terminal or unknown; either way the notification is stale.
		uc.logger.Debug("order outcome ignored",
			zap.String("order_id", orderID.String()),
			zap.String("status", string(to)))
		return nil
	}

	telemetry.RecordCounter(ctx, "order_outcomes_projected_total", "Order terminal statuses recorded", 1,
		attribute.String("status", string(to)))

	return nil
}
