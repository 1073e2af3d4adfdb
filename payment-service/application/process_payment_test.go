package application

import (
	"context"
	"testing"
	"time"

	"github.com/orderflow/order-system/payment-service/domain"
	"github.com/orderflow/order-system/payment-service/mocks"
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
				Quantity:  2,
				UnitPrice: models.NewMoney(2500, "USD"),
			},
		},
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestProcessPayment_Execute(t *testing.T) {
	order := testOrder()

	tests := []struct {
		name          string
		command       *ProcessPaymentCommand
		setupMocks    func(*mocks.MockPaymentRepository, *mocks.MockAuthorizer, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name:    "approved charge announces payment approval",
			command: &ProcessPaymentCommand{Order: order},
			setupMocks: func(repo *mocks.MockPaymentRepository, auth *mocks.MockAuthorizer, publisher *mocks.MockPublisher) {
				auth.EXPECT().Authorize(mock.Anything, order).Return(true, nil).Once()
				repo.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
					return p.OrderID == order.OrderID && p.Status == domain.PaymentStatusApproved
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.Topic == events.PaymentApprovedTopic && evt.AggregateID == order.OrderID
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name:    "declined charge triggers compensation instead of failing",
			command: &ProcessPaymentCommand{Order: order},
			setupMocks: func(repo *mocks.MockPaymentRepository, auth *mocks.MockAuthorizer, publisher *mocks.MockPublisher) {
				auth.EXPECT().Authorize(mock.Anything, order).Return(false, nil).Once()
				repo.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
					return p.Status == domain.PaymentStatusDeclined
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					reason, _ := evt.Metadata.Get("reason")
					return evt.Topic == events.CompensationTopic && reason == "payment declined"
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name: "invalid order payload",
			command: &ProcessPaymentCommand{Order: models.Order{
				OrderID: models.GenerateUUID(),
				UserID:  models.GenerateUUID(),
			}},
			setupMocks: func(repo *mocks.MockPaymentRepository, auth *mocks.MockAuthorizer, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "invalid order payload",
		},
		{
			name:    "authorizer error surfaces for redelivery",
			command: &ProcessPaymentCommand{Order: order},
			setupMocks: func(repo *mocks.MockPaymentRepository, auth *mocks.MockAuthorizer, publisher *mocks.MockPublisher) {
				auth.EXPECT().Authorize(mock.Anything, order).
					Return(false, errors.New("gateway timeout")).Once()
			},
			expectedError: "authorization failed",
		},
		{
			name:    "repository error surfaces for redelivery",
			command: &ProcessPaymentCommand{Order: order},
			setupMocks: func(repo *mocks.MockPaymentRepository, auth *mocks.MockAuthorizer, publisher *mocks.MockPublisher) {
				auth.EXPECT().Authorize(mock.Anything, order).Return(true, nil).Once()
				repo.EXPECT().Insert(mock.Anything, mock.Anything).
					Return(errors.New("database error")).Once()
			},
			expectedError: "failed to record payment",
		},
		{
			name:    "outcome publish error surfaces for redelivery",
			command: &ProcessPaymentCommand{Order: order},
			setupMocks: func(repo *mocks.MockPaymentRepository, auth *mocks.MockAuthorizer, publisher *mocks.MockPublisher) {
				auth.EXPECT().Authorize(mock.Anything, order).Return(true, nil).Once()
				repo.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("broker down")).Once()
			},
			expectedError: "failed to publish payment outcome",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockPaymentRepository(t)
			mockAuthorizer := mocks.NewMockAuthorizer(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockRepo, mockAuthorizer, mockPublisher)

			useCase := NewProcessPayment(mockRepo, mockAuthorizer, mockPublisher)

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

func TestProcessPayment_Execute_RedeliveredCommand(t *testing.T) {
	order := testOrder()

	t.Run("re-announces the recorded decline without charging again", func(t *testing.T) {
		mockRepo := mocks.NewMockPaymentRepository(t)
		mockAuthorizer := mocks.NewMockAuthorizer(t)
		mockPublisher := mocks.NewMockPublisher(t)

		recorded := domain.RecordPayment(order, false)

		// The fresh decision approves, but the recorded decline wins.
		mockAuthorizer.EXPECT().Authorize(mock.Anything, order).Return(true, nil).Once()
		mockRepo.EXPECT().Insert(mock.Anything, mock.Anything).
			Return(domain.ErrPaymentExists).Once()
		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
			Return(recorded, nil).Once()
		mockPublisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
			reason, _ := evt.Metadata.Get("reason")
			return evt.Topic == events.CompensationTopic && reason == "payment declined"
		})).Return(nil).Once()

		useCase := NewProcessPayment(mockRepo, mockAuthorizer, mockPublisher)

		err := useCase.Execute(context.Background(), &ProcessPaymentCommand{Order: order})
		assert.NoError(t, err)
	})

	t.Run("refunded payment announces nothing", func(t *testing.T) {
		mockRepo := mocks.NewMockPaymentRepository(t)
		mockAuthorizer := mocks.NewMockAuthorizer(t)
		mockPublisher := mocks.NewMockPublisher(t)

		recorded := domain.RecordPayment(order, true)
		recorded.Status = domain.PaymentStatusRefunded

		mockAuthorizer.EXPECT().Authorize(mock.Anything, order).Return(true, nil).Once()
		mockRepo.EXPECT().Insert(mock.Anything, mock.Anything).
			Return(domain.ErrPaymentExists).Once()
		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
			Return(recorded, nil).Once()

		useCase := NewProcessPayment(mockRepo, mockAuthorizer, mockPublisher)

		err := useCase.Execute(context.Background(), &ProcessPaymentCommand{Order: order})
		assert.NoError(t, err)
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("recorded payment lookup error surfaces for redelivery", func(t *testing.T) {
		mockRepo := mocks.NewMockPaymentRepository(t)
		mockAuthorizer := mocks.NewMockAuthorizer(t)
		mockPublisher := mocks.NewMockPublisher(t)

		mockAuthorizer.EXPECT().Authorize(mock.Anything, order).Return(true, nil).Once()
		mockRepo.EXPECT().Insert(mock.Anything, mock.Anything).
			Return(domain.ErrPaymentExists).Once()
		mockRepo.EXPECT().FindByOrderID(mock.Anything, order.OrderID).
			Return(nil, errors.New("database error")).Once()

		useCase := NewProcessPayment(mockRepo, mockAuthorizer, mockPublisher)

		err := useCase.Execute(context.Background(), &ProcessPaymentCommand{Order: order})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load recorded payment")
	})
}
