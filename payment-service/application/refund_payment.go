package application

import (
	"context"

	"github.com/orderflow/order-system/payment-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/orderflow/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RefundPaymentCommand carries an order.payment.compensation command
type RefundPaymentCommand struct {
	OrderID models.ID `json:"order_id"`
}

// RefundPayment reverses an approved charge during compensation. Only an
// approved payment moves to refunded; declined, already-refunded and unknown
// orders ignore the command.
type RefundPayment struct {
	paymentRepository domain.PaymentRepository
	logger            *zap.Logger
}

// NewRefundPayment creates a new RefundPayment use case
func NewRefundPayment(paymentRepository domain.PaymentRepository, logger *zap.Logger) *RefundPayment {
	return &RefundPayment{
		paymentRepository: paymentRepository,
		logger:            logger,
	}
}

// Execute refunds the order's payment
func (uc *RefundPayment) Execute(ctx context.Context, cmd *RefundPaymentCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "refund_payment",
		trace.WithAttributes(attribute.String("order_id", cmd.OrderID.String())),
	)
	defer span.End()

	if cmd.OrderID == "" {
		return errors.New("order ID is required")
	}

	refunded, err := uc.paymentRepository.MarkRefunded(ctx, cmd.OrderID)
	if err != nil {
		return errors.Wrap(err, "failed to refund payment")
	}

	if !refunded {
		uc.logger.Debug("no approved payment to refund",
			zap.String("order_id", cmd.OrderID.String()))
		return nil
	}

	uc.logger.Info("refunded payment", zap.String("order_id", cmd.OrderID.String()))

	telemetry.RecordCounter(ctx, "payments_refunded_total", "Payments refunded", 1)

	return nil
}
