package application

import (
	"context"

	"github.com/orderflow/order-system/payment-service/domain"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/orderflow/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ProcessPaymentCommand carries an order.payment charge command
type ProcessPaymentCommand struct {
	Order models.Order `json:"order"`
}

// ProcessPayment charges the order and reports the outcome to the saga:
// saga.notify on approval, saga.compensation on decline. The decision is
// recorded before it is announced, so a redelivered command re-announces
// the recorded outcome instead of charging again.
type ProcessPayment struct {
	paymentRepository domain.PaymentRepository
	authorizer        domain.Authorizer
	eventPublisher    events.Publisher
}

// NewProcessPayment creates a new ProcessPayment use case
func NewProcessPayment(
	paymentRepository domain.PaymentRepository,
	authorizer domain.Authorizer,
	eventPublisher events.Publisher,
) *ProcessPayment {
	return &ProcessPayment{
		paymentRepository: paymentRepository,
		authorizer:        authorizer,
		eventPublisher:    eventPublisher,
	}
}

// Execute charges the order
func (uc *ProcessPayment) Execute(ctx context.Context, cmd *ProcessPaymentCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "process_payment",
		trace.WithAttributes(attribute.String("order_id", cmd.Order.OrderID.String())),
	)
	defer span.End()

	if err := cmd.Order.Validate(); err != nil {
		return errors.Wrap(err, "invalid order payload")
	}

	approved, err := uc.authorizer.Authorize(ctx, cmd.Order)
	if err != nil {
		return errors.Wrap(err, "authorization failed")
	}

	payment := domain.RecordPayment(cmd.Order, approved)

	err = uc.paymentRepository.Insert(ctx, payment)
	if errors.Is(err, domain.ErrPaymentExists) {
		// Redelivered charge command. Announce the recorded outcome.
		existing, err := uc.paymentRepository.FindByOrderID(ctx, cmd.Order.OrderID)
		if err != nil {
			return errors.Wrap(err, "failed to load recorded payment")
		}
		if existing == nil {
			return errors.New("recorded payment disappeared")
		}
		payment = existing
	} else if err != nil {
		return errors.Wrap(err, "failed to record payment")
	}

	return uc.announce(ctx, cmd.Order, payment)
}

func (uc *ProcessPayment) announce(ctx context.Context, order models.Order, payment *domain.Payment) error {
	if payment.Status == domain.PaymentStatusRefunded {
		// Already compensated; nothing left to announce.
		return nil
	}

	var outcome *events.Event
	if payment.Approved() {
		outcome = events.NewEvent(order.OrderID, events.PaymentApprovedTopic, order).
			WithCorrelationID(order.OrderID)
	} else {
		outcome = events.NewEvent(order.OrderID, events.CompensationTopic, order).
			WithCorrelationID(order.OrderID).
			WithMetadata("reason", "payment declined")
	}

	if err := uc.eventPublisher.Publish(ctx, outcome); err != nil {
		return errors.Wrap(err, "failed to publish payment outcome")
	}

	telemetry.RecordCounter(ctx, "payments_processed_total", "Charge outcomes announced", 1,
		attribute.String("status", string(payment.Status)))

	return nil
}
