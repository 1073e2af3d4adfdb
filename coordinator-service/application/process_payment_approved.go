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

// ProcessPaymentApprovedCommand carries the saga.notify outcome
type ProcessPaymentApprovedCommand struct {
	OrderID models.ID    `json:"order_id"`
	Order   models.Order `json:"order"`
}

// ProcessPaymentApproved records the payment step, completes the saga and
// commands the success notification.
type ProcessPaymentApproved struct {
	sagaRepository domain.SagaRepository
	eventPublisher events.Publisher
}

// NewProcessPaymentApproved creates a new ProcessPaymentApproved use case
func NewProcessPaymentApproved(
	sagaRepository domain.SagaRepository,
	eventPublisher events.Publisher,
) *ProcessPaymentApproved {
	return &ProcessPaymentApproved{
		sagaRepository: sagaRepository,
		eventPublisher: eventPublisher,
	}
}

// Execute completes the saga for an approved payment
func (uc *ProcessPaymentApproved) Execute(ctx context.Context, cmd *ProcessPaymentApprovedCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "process_payment_approved",
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
			return reportProtocolViolation(ctx, uc.eventPublisher, cmd.OrderID, cmd.Order,
				"payment outcome for unknown saga")
		}

		// A saga already in completing had its notification decided but not
		// confirmed on the wire; skip the race and re-emit.
		resuming := saga.Status == domain.SagaStatusCompleting

		err = saga.ConfirmPaymentApproved()
		if errors.Is(err, domain.ErrSagaAlreadyFailed) {
			return nil
		}
		if err != nil {
			return err
		}

		if len(saga.Events()) == 0 {
			return nil
		}

		if !resuming {
			err = uc.sagaRepository.Update(ctx, saga)
			if errors.Is(err, domain.ErrVersionConflict) {
				continue
			}
			if err != nil {
				return errors.Wrap(err, "failed to persist saga transition")
			}
		}

		if err := uc.eventPublisher.Publish(ctx, saga.Events()...); err != nil {
			// The saga stays completing; redelivery or the watchdog re-emits
			// the notification.
			return errors.Wrap(err, "failed to publish success notification")
		}
		saga.ClearEvents()

		saga.FinishCompletion()
		err = uc.sagaRepository.Update(ctx, saga)
		if err != nil && !errors.Is(err, domain.ErrVersionConflict) {
			return errors.Wrap(err, "failed to persist saga transition")
		}

		telemetry.RecordCounter(ctx, "sagas_completed_total", "Sagas completed", 1)

		return nil
	}

	return domain.ErrVersionConflict
}
