package application

import (
	"context"
	"testing"

	"github.com/orderflow/order-system/coordinator-service/domain"
	"github.com/orderflow/order-system/coordinator-service/mocks"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pendingSaga(order models.Order) *domain.SagaState {
	saga := domain.StartSaga(order)
	saga.ClearEvents()
	return saga
}

func TestProcessInventoryReserved_Execute(t *testing.T) {
	order := testOrder()

	tests := []struct {
		name          string
		command       *ProcessInventoryReservedCommand
		setupMocks    func(*mocks.MockSagaRepository, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name:    "confirms step and commands payment",
			command: &ProcessInventoryReservedCommand{OrderID: order.OrderID, Order: order},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
					Return(pendingSaga(order), nil).Once()
				repo.EXPECT().Update(mock.Anything, mock.MatchedBy(func(saga *domain.SagaState) bool {
					return saga.HasStep(domain.StepInventoryReserved) && saga.Version.Value == 2
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.Topic == events.PaymentCommandTopic
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name:    "missing order ID",
			command: &ProcessInventoryReservedCommand{},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "order ID is required",
		},
		{
			name:    "unknown saga goes to the diagnostics sink",
			command: &ProcessInventoryReservedCommand{OrderID: order.OrderID, Order: order},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(nil, nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.Topic == events.SagaErrorsTopic
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name:    "duplicate delivery is absorbed without publishing",
			command: &ProcessInventoryReservedCommand{OrderID: order.OrderID, Order: order},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				saga := pendingSaga(order)
				assert.NoError(t, saga.ConfirmInventoryReserved())
				saga.ClearEvents()
				repo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(saga, nil).Once()
			},
			expectedError: "",
		},
		{
			name:    "late success after compensation is ignored",
			command: &ProcessInventoryReservedCommand{OrderID: order.OrderID, Order: order},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				saga := pendingSaga(order)
				assert.NoError(t, saga.Compensate("inventory shortage"))
				saga.ClearEvents()
				repo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(saga, nil).Once()
			},
			expectedError: "",
		},
		{
			name:    "repository load error",
			command: &ProcessInventoryReservedCommand{OrderID: order.OrderID, Order: order},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
					Return(nil, errors.New("database error")).Once()
			},
			expectedError: "failed to load saga",
		},
		{
			name:    "publish error surfaces for redelivery",
			command: &ProcessInventoryReservedCommand{OrderID: order.OrderID, Order: order},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
					Return(pendingSaga(order), nil).Once()
				repo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("broker down")).Once()
			},
			expectedError: "failed to publish payment command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockSagaRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockRepo, mockPublisher)

			useCase := NewProcessInventoryReserved(mockRepo, mockPublisher)

			err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessInventoryReserved_Execute_VersionConflict(t *testing.T) {
	order := testOrder()

	t.Run("retries after losing the version race", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
			RunAndReturn(func(context.Context, models.ID) (*domain.SagaState, error) {
				return pendingSaga(order), nil
			}).Twice()
		mockRepo.EXPECT().Update(mock.Anything, mock.Anything).
			Return(domain.ErrVersionConflict).Once()
		mockRepo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil).Once()
		mockPublisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

		useCase := NewProcessInventoryReserved(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &ProcessInventoryReservedCommand{
			OrderID: order.OrderID,
			Order:   order,
		})

		assert.NoError(t, err)
	})

	t.Run("gives up after exhausting attempts", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
			RunAndReturn(func(context.Context, models.ID) (*domain.SagaState, error) {
				return pendingSaga(order), nil
			}).Times(maxTransitionAttempts)
		mockRepo.EXPECT().Update(mock.Anything, mock.Anything).
			Return(domain.ErrVersionConflict).Times(maxTransitionAttempts)

		useCase := NewProcessInventoryReserved(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &ProcessInventoryReservedCommand{
			OrderID: order.OrderID,
			Order:   order,
		})

		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})
}
