package application

import (
	"context"

	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// SagaErrorData is the payload published to the diagnostics sink
type SagaErrorData struct {
	Error string       `json:"error"`
	Order models.Order `json:"order"`
}

// reportProtocolViolation publishes the offense to saga.errors and returns
// nil so the triggering message is acknowledged: protocol violations are not
// retried indefinitely.
func reportProtocolViolation(ctx context.Context, publisher events.Publisher, orderID models.ID, order models.Order, reason string) error {
	event := events.NewEvent(orderID, events.SagaErrorsTopic, SagaErrorData{
		Error: reason,
		Order: order,
	}).WithCorrelationID(orderID)

	if err := publisher.Publish(ctx, event); err != nil {
		// The sink itself is unavailable; surface the failure so the broker
		// redelivers and the report is not lost.
		return errors.Wrap(err, "failed to report saga error")
	}

	return nil
}
