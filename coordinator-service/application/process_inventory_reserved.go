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

// maxTransitionAttempts bounds the optimistic-locking retry loop. Losing
// every attempt returns the conflict to the subscriber, which leaves the
// message for broker redelivery.
const maxTransitionAttempts = 3

// ProcessInventoryReservedCommand carries the saga.inventory.reserved outcome
type ProcessInventoryReservedCommand struct {
	OrderID models.ID    `json:"order_id"`
	Order   models.Order `json:"order"`
}

// ProcessInventoryReserved advances the saga past the inventory step and
// commands the payment step. Duplicate or late deliveries are absorbed.
type ProcessInventoryReserved struct {
	sagaRepository domain.SagaRepository
	eventPublisher events.Publisher
}

// NewProcessInventoryReserved creates a new ProcessInventoryReserved use case
func NewProcessInventoryReserved(
	sagaRepository domain.SagaRepository,
	eventPublisher events.Publisher,
) *ProcessInventoryReserved {
	return &ProcessInventoryReserved{
		sagaRepository: sagaRepository,
		eventPublisher: eventPublisher,
	}
}

// Execute records the confirmed inventory step
func (uc *ProcessInventoryReserved) Execute(ctx context.Context, cmd *ProcessInventoryReservedCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "process_inventory_reserved",
		trace.WithAttributes(attribute.String("order_id", cmd.OrderID.String())),
	)
	defer span.End()

	if cmd.OrderID == "" {
		return errors.New("order ID is required")
	}

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		saga, err := uc.sagaRepository.FindByOrderID(ctx, cmd.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to load saga")
		}

		if saga == nil {
			// An outcome event can only follow a persisted saga.start;
			// an unknown order is a protocol violation, not a retry case.
			return reportProtocolViolation(ctx, uc.eventPublisher, cmd.OrderID, cmd.Order,
				"inventory outcome for unknown saga")
		}

		err = saga.ConfirmInventoryReserved()
		if errors.Is(err, domain.ErrSagaAlreadyFailed) {
			// Late success after compensation began: ignore, never append.
			return nil
		}
		if err != nil {
			return err
		}

		if len(saga.Events()) == 0 {
			// Duplicate delivery, step already recorded.
			return nil
		}

		err = uc.sagaRepository.Update(ctx, saga)
		if errors.Is(err, domain.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "failed to persist saga transition")
		}

		if err := uc.eventPublisher.Publish(ctx, saga.Events()...); err != nil {
			return errors.Wrap(err, "failed to publish payment command")
		}
		saga.ClearEvents()

		telemetry.RecordCounter(ctx, "saga_steps_confirmed_total", "Forward steps confirmed", 1,
			attribute.String("step", string(domain.StepInventoryReserved)))

		return nil
	}

	return domain.ErrVersionConflict
}
