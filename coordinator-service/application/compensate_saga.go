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

// CompensateSagaCommand carries a saga.compensation trigger. Order is the
// payload the failing step attached; compensation commands themselves are
// replayed from the snapshot persisted at saga start.
type CompensateSagaCommand struct {
	OrderID models.ID    `json:"order_id"`
	Order   models.Order `json:"order"`
	Reason  string       `json:"reason"`
}

// CompensateSaga fails the saga and fans out one compensation command per
// completed forward step, in reverse completion order, exactly once.
type CompensateSaga struct {
	sagaRepository domain.SagaRepository
	eventPublisher events.Publisher
}

// NewCompensateSaga creates a new CompensateSaga use case
func NewCompensateSaga(
	sagaRepository domain.SagaRepository,
	eventPublisher events.Publisher,
) *CompensateSaga {
	return &CompensateSaga{
		sagaRepository: sagaRepository,
		eventPublisher: eventPublisher,
	}
}

// Execute runs the compensation path for the order's saga
func (uc *CompensateSaga) Execute(ctx context.Context, cmd *CompensateSagaCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "compensate_saga",
		trace.WithAttributes(
			attribute.String("order_id", cmd.OrderID.String()),
			attribute.String("reason", cmd.Reason),
		),
	)
	defer span.End()

	if cmd.OrderID == "" {
		return errors.New("order ID is required")
	}

	reason := cmd.Reason
	if reason == "" {
		reason = "step failure"
	}

	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		saga, err := uc.sagaRepository.FindByOrderID(ctx, cmd.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to load saga")
		}

		if saga == nil {
			// Compensation for an order the coordinator never admitted.
			return reportProtocolViolation(ctx, uc.eventPublisher, cmd.OrderID, cmd.Order,
				"compensation for unknown saga")
		}

		// A saga already in compensating had its fan-out decided but not
		// confirmed on the wire; skip the race and re-emit.
		resuming := saga.Status == domain.SagaStatusCompensating

		err = saga.Compensate(reason)
		if errors.Is(err, domain.ErrSagaAlreadyFailed) {
			// The fan-out already ran; a second one would double-compensate.
			return nil
		}
		if err != nil {
			return err
		}

		if !resuming {
			// The conditional move to compensating is what makes the fan-out
			// decision exactly-once across concurrent coordinator instances:
			// only the winner of the version race reaches Publish.
			err = uc.sagaRepository.Update(ctx, saga)
			if errors.Is(err, domain.ErrVersionConflict) {
				continue
			}
			if err != nil {
				return errors.Wrap(err, "failed to persist saga failure")
			}
		}

		if err := uc.eventPublisher.Publish(ctx, saga.Events()...); err != nil {
			// The saga stays compensating; redelivery or the watchdog
			// re-emits from the persisted steps.
			return errors.Wrap(err, "failed to publish compensation commands")
		}
		saga.ClearEvents()

		saga.FinishCompensation()
		err = uc.sagaRepository.Update(ctx, saga)
		if err != nil && !errors.Is(err, domain.ErrVersionConflict) {
			// Conflict means another instance finalized first; any other
			// failure leaves the saga compensating for a later re-emit,
			// which downstream consumers absorb idempotently.
			return errors.Wrap(err, "failed to persist saga failure")
		}

		telemetry.RecordCounter(ctx, "sagas_compensated_total", "Sagas compensated", 1,
			attribute.String("reason", reason))

		return nil
	}

	return domain.ErrVersionConflict
}
