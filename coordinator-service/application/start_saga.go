package application

import (
	"context"

	"github.com/orderflow/order-system/coordinator-service/domain"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/orderflow/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StartSagaCommand carries the admitted order payload from saga.start
type StartSagaCommand struct {
	Order models.Order `json:"order"`
}

// StartSaga use case admits an order into the saga: persists the pending
// record with its compensation snapshot and commands the inventory step.
type StartSaga struct {
	sagaRepository domain.SagaRepository
	eventPublisher events.Publisher
}

// NewStartSaga creates a new StartSaga use case
func NewStartSaga(sagaRepository domain.SagaRepository, eventPublisher events.Publisher) *StartSaga {
	return &StartSaga{
		sagaRepository: sagaRepository,
		eventPublisher: eventPublisher,
	}
}

// Execute starts the saga for the given order
func (uc *StartSaga) Execute(ctx context.Context, cmd *StartSagaCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "start_saga",
		trace.WithAttributes(attribute.String("order_id", cmd.Order.OrderID.String())),
	)
	defer span.End()

	if err := cmd.Order.Validate(); err != nil {
		return errors.Wrap(err, "invalid order payload")
	}

	saga := domain.StartSaga(cmd.Order)

	err := uc.sagaRepository.Insert(ctx, saga)
	if errors.Is(err, domain.ErrSagaExists) {
		// Redelivered saga.start. The record is already there; re-issue the
		// inventory command only if the saga made no progress yet, in case
		// the first delivery crashed between persist and publish.
		return uc.reissueIfStalled(ctx, cmd.Order.OrderID)
	}
	if err != nil {
		return errors.Wrap(err, "failed to persist saga")
	}

	if err := uc.eventPublisher.Publish(ctx, saga.Events()...); err != nil {
		return errors.Wrap(err, "failed to publish inventory command")
	}
	saga.ClearEvents()

	telemetry.RecordCounter(ctx, "sagas_started_total", "Sagas admitted", 1)

	return nil
}

func (uc *StartSaga) reissueIfStalled(ctx context.Context, orderID models.ID) error {
	saga, err := uc.sagaRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		return errors.Wrap(err, "failed to load existing saga")
	}

	if saga == nil || saga.Status != domain.SagaStatusPending || len(saga.Steps) > 0 {
		return nil
	}

	command := events.NewEvent(saga.OrderID, events.InventoryCommandTopic, saga.CompensationData).
		WithCorrelationID(saga.OrderID)

	if err := uc.eventPublisher.Publish(ctx, command); err != nil {
		return errors.Wrap(err, "failed to re-publish inventory command")
	}

	return nil
}
