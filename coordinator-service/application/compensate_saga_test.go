package application

import (
	"context"
	"testing"

	"github.com/orderflow/order-system/coordinator-service/domain"
	"github.com/orderflow/order-system/coordinator-service/mocks"
	"github.com/orderflow/order-system/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompensateSaga_Execute(t *testing.T) {
	order := testOrder()

	t.Run("fans out compensations in reverse completion order", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		saga := pendingSaga(order)
		require.NoError(t, saga.ConfirmInventoryReserved())
		saga.Steps = append(saga.Steps, domain.StepPaymentProcessed)
		saga.ClearEvents()

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(saga, nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, mock.MatchedBy(func(s *domain.SagaState) bool {
			return s.Status == domain.SagaStatusCompensating
		})).Return(nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, mock.MatchedBy(func(s *domain.SagaState) bool {
			return s.Status == domain.SagaStatusFailed
		})).Return(nil).Once()

		var published []*events.Event
		mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(ctx context.Context, evts ...*events.Event) {
				published = evts
			}).Return(nil).Once()

		useCase := NewCompensateSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{
			OrderID: order.OrderID,
			Order:   order,
			Reason:  "fulfillment failure",
		})

		require.NoError(t, err)
		require.Len(t, published, 4)
		assert.Equal(t, events.PaymentCompensationTopic, published[0].Topic)
		assert.Equal(t, events.InventoryCompensationTopic, published[1].Topic)
		assert.Equal(t, events.OrderCompensationTopic, published[2].Topic)
		assert.Equal(t, events.NotifyFailureTopic, published[3].Topic)

		reason, ok := published[0].Metadata.Get("reason")
		assert.True(t, ok)
		assert.Equal(t, "fulfillment failure", reason)
	})

	t.Run("no forward steps still cancels order and notifies", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
			Return(pendingSaga(order), nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil).Times(2)

		var published []*events.Event
		mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
			Run(func(ctx context.Context, evts ...*events.Event) {
				published = evts
			}).Return(nil).Once()

		useCase := NewCompensateSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{
			OrderID: order.OrderID,
			Order:   order,
			Reason:  "inventory shortage",
		})

		require.NoError(t, err)
		require.Len(t, published, 2)
		assert.Equal(t, events.OrderCompensationTopic, published[0].Topic)
		assert.Equal(t, events.NotifyFailureTopic, published[1].Topic)
	})

	t.Run("publish failure leaves the saga compensating", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		saga := pendingSaga(order)
		require.NoError(t, saga.ConfirmInventoryReserved())
		saga.ClearEvents()

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(saga, nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, mock.MatchedBy(func(s *domain.SagaState) bool {
			return s.Status == domain.SagaStatusCompensating
		})).Return(nil).Once()
		mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("sns unavailable")).Once()

		useCase := NewCompensateSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{
			OrderID: order.OrderID,
			Order:   order,
			Reason:  "payment declined",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish compensation commands")
		assert.Equal(t, domain.SagaStatusCompensating, saga.Status)
		assert.False(t, saga.IsTerminal())
	})

	t.Run("redelivery after a publish failure re-emits the fan-out", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		// As reloaded from the store after the first delivery persisted the
		// decision but never got the commands on the wire.
		stored := pendingSaga(order)
		require.NoError(t, stored.ConfirmInventoryReserved())
		require.NoError(t, stored.Compensate("payment declined"))
		stored.ClearEvents()
		require.Equal(t, domain.SagaStatusCompensating, stored.Status)

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(stored, nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, mock.MatchedBy(func(s *domain.SagaState) bool {
			return s.Status == domain.SagaStatusFailed
		})).Return(nil).Once()

		var published []*events.Event
		mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(ctx context.Context, evts ...*events.Event) {
				published = evts
			}).Return(nil).Once()

		useCase := NewCompensateSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{
			OrderID: order.OrderID,
			Order:   order,
			Reason:  "payment declined",
		})

		require.NoError(t, err)
		require.Len(t, published, 3)
		assert.Equal(t, events.InventoryCompensationTopic, published[0].Topic)
		assert.Equal(t, events.OrderCompensationTopic, published[1].Topic)
		assert.Equal(t, events.NotifyFailureTopic, published[2].Topic)
	})

	t.Run("already failed saga refuses a second fan-out", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		saga := pendingSaga(order)
		require.NoError(t, saga.Compensate("payment declined"))
		saga.FinishCompensation()
		saga.ClearEvents()

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(saga, nil).Once()

		useCase := NewCompensateSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{
			OrderID: order.OrderID,
			Order:   order,
			Reason:  "payment declined",
		})

		assert.NoError(t, err)
		mockPublisher.AssertNotCalled(t, "Publish")
	})

	t.Run("unknown saga goes to the diagnostics sink", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(nil, nil).Once()
		mockPublisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
			return evt.Topic == events.SagaErrorsTopic
		})).Return(nil).Once()

		useCase := NewCompensateSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{
			OrderID: order.OrderID,
			Order:   order,
		})

		assert.NoError(t, err)
	})

	t.Run("missing order ID", func(t *testing.T) {
		useCase := NewCompensateSaga(mocks.NewMockSagaRepository(t), mocks.NewMockPublisher(t))

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "order ID is required")
	})

	t.Run("empty reason defaults to step failure", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
			Return(pendingSaga(order), nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil).Times(2)

		var published []*events.Event
		mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).
			Run(func(ctx context.Context, evts ...*events.Event) {
				published = evts
			}).Return(nil).Once()

		useCase := NewCompensateSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{
			OrderID: order.OrderID,
			Order:   order,
		})

		require.NoError(t, err)
		require.NotEmpty(t, published)
		reason, _ := published[0].Metadata.Get("reason")
		assert.Equal(t, "step failure", reason)
	})

	t.Run("version conflict loser retries and observes failed saga", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		// First load sees pending, loses the race; second load sees failed.
		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
			Return(pendingSaga(order), nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, mock.Anything).
			Return(domain.ErrVersionConflict).Once()

		failed := pendingSaga(order)
		require.NoError(t, failed.Compensate("payment declined"))
		failed.FinishCompensation()
		failed.ClearEvents()
		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(failed, nil).Once()

		useCase := NewCompensateSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{
			OrderID: order.OrderID,
			Order:   order,
			Reason:  "payment declined",
		})

		assert.NoError(t, err)
		mockPublisher.AssertNotCalled(t, "Publish")
	})

	t.Run("repository update error", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
			Return(pendingSaga(order), nil).Once()
		mockRepo.EXPECT().Update(mock.Anything, mock.Anything).
			Return(errors.New("database error")).Once()

		useCase := NewCompensateSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &CompensateSagaCommand{
			OrderID: order.OrderID,
			Order:   order,
			Reason:  "payment declined",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to persist saga failure")
	})
}
