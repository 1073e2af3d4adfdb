package application

import (
	"context"
	"time"

	"github.com/orderflow/order-system/coordinator-service/domain"
	"github.com/orderflow/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SweepStaleSagas is the dead-saga watchdog: a saga whose step services never
// answer would otherwise stay pending forever. Pending and compensating sagas
// without progress past the deadline are forced down the regular compensation
// path; a stuck completing saga already earned its success and is resumed
// through the completion path instead.
type SweepStaleSagas struct {
	sagaRepository         domain.SagaRepository
	compensateSaga         *CompensateSaga
	processPaymentApproved *ProcessPaymentApproved
	deadline               time.Duration
	batchSize              int
	logger                 *zap.Logger
}

// NewSweepStaleSagas creates a new SweepStaleSagas use case
func NewSweepStaleSagas(
	sagaRepository domain.SagaRepository,
	compensateSaga *CompensateSaga,
	processPaymentApproved *ProcessPaymentApproved,
	deadline time.Duration,
	batchSize int,
	logger *zap.Logger,
) *SweepStaleSagas {
	return &SweepStaleSagas{
		sagaRepository:         sagaRepository,
		compensateSaga:         compensateSaga,
		processPaymentApproved: processPaymentApproved,
		deadline:               deadline,
		batchSize:              batchSize,
		logger:                 logger,
	}
}

// Execute resolves every saga stuck past the deadline and returns how many
// were swept
func (uc *SweepStaleSagas) Execute(ctx context.Context) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "sweep_stale_sagas")
	defer span.End()

	olderThan := time.Now().Add(-uc.deadline)

	stale, err := uc.sagaRepository.FindStale(ctx, olderThan, uc.batchSize)
	if err != nil {
		return 0, errors.Wrap(err, "failed to scan stale sagas")
	}

	swept := 0
	for _, saga := range stale {
		var err error
		if saga.Status == domain.SagaStatusCompleting {
			err = uc.processPaymentApproved.Execute(ctx, &ProcessPaymentApprovedCommand{
				OrderID: saga.OrderID,
				Order:   saga.CompensationData,
			})
		} else {
			err = uc.compensateSaga.Execute(ctx, &CompensateSagaCommand{
				OrderID: saga.OrderID,
				Order:   saga.CompensationData,
				Reason:  "saga deadline exceeded",
			})
		}

		if err != nil {
			// Leave the saga for the next sweep rather than aborting the batch.
			uc.logger.Warn("failed to sweep stale saga",
				zap.String("order_id", saga.OrderID.String()),
				zap.Error(err))
			continue
		}

		uc.logger.Info("swept stale saga",
			zap.String("order_id", saga.OrderID.String()),
			zap.String("status", string(saga.Status)),
			zap.Time("stuck_since", saga.StuckSince()))
		swept++
	}

	if swept > 0 {
		telemetry.RecordCounter(ctx, "sagas_swept_total", "Stale sagas force-compensated", int64(swept),
			attribute.String("reason", "deadline"))
	}

	return swept, nil
}
