package application

import (
	"context"
	"testing"
	"time"

	"github.com/orderflow/order-system/coordinator-service/domain"
	"github.com/orderflow/order-system/coordinator-service/mocks"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testOrder() models.Order {
	return models.Order{
		OrderID: models.GenerateUUID(),
		UserID:  models.GenerateUUID(),
		Items: []models.OrderItem{
			{
				ProductID: models.GenerateUUID(),
				Quantity:  1,
				UnitPrice: models.NewMoney(1500, "USD"),
			},
		},
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestStartSaga_Execute(t *testing.T) {
	order := testOrder()

	tests := []struct {
		name          string
		command       *StartSagaCommand
		setupMocks    func(*mocks.MockSagaRepository, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name:    "admits order and commands inventory",
			command: &StartSagaCommand{Order: order},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(saga *domain.SagaState) bool {
					return saga.OrderID == order.OrderID &&
						saga.Status == domain.SagaStatusPending &&
						len(saga.Steps) == 0
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.Topic == events.InventoryCommandTopic && evt.AggregateID == order.OrderID
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name: "rejects invalid order payload",
			command: &StartSagaCommand{Order: models.Order{
				OrderID: models.GenerateUUID(),
				UserID:  models.GenerateUUID(),
			}},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "invalid order payload",
		},
		{
			name:    "repository insert error",
			command: &StartSagaCommand{Order: order},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Insert(mock.Anything, mock.Anything).
					Return(errors.New("database error")).Once()
			},
			expectedError: "failed to persist saga",
		},
		{
			name:    "publish error",
			command: &StartSagaCommand{Order: order},
			setupMocks: func(repo *mocks.MockSagaRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("broker down")).Once()
			},
			expectedError: "failed to publish inventory command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockSagaRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockRepo, mockPublisher)

			useCase := NewStartSaga(mockRepo, mockPublisher)

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

func TestStartSaga_Execute_DuplicateStart(t *testing.T) {
	order := testOrder()

	t.Run("saga already progressed, nothing re-published", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		existing := domain.StartSaga(order)
		existing.ClearEvents()
		assert.NoError(t, existing.ConfirmInventoryReserved())
		existing.ClearEvents()

		mockRepo.EXPECT().Insert(mock.Anything, mock.Anything).Return(domain.ErrSagaExists).Once()
		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(existing, nil).Once()

		useCase := NewStartSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &StartSagaCommand{Order: order})

		assert.NoError(t, err)
		mockPublisher.AssertNotCalled(t, "Publish")
	})

	t.Run("stalled saga gets the inventory command re-issued", func(t *testing.T) {
		mockRepo := mocks.NewMockSagaRepository(t)
		mockPublisher := mocks.NewMockPublisher(t)

		existing := domain.StartSaga(order)
		existing.ClearEvents()

		mockRepo.EXPECT().Insert(mock.Anything, mock.Anything).Return(domain.ErrSagaExists).Once()
		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).Return(existing, nil).Once()
		mockPublisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
			return evt.Topic == events.InventoryCommandTopic && evt.AggregateID == order.OrderID
		})).Return(nil).Once()

		useCase := NewStartSaga(mockRepo, mockPublisher)

		err := useCase.Execute(context.Background(), &StartSagaCommand{Order: order})

		assert.NoError(t, err)
	})
}
