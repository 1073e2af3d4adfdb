package application

import (
	"context"
	"testing"

	"github.com/orderflow/order-system/order-service/mocks"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestProjectOrderOutcome(t *testing.T) {
	orderID := models.GenerateUUID()

	tests := []struct {
		name          string
		run           func(*ProjectOrderOutcome, context.Context, *OrderOutcomeCommand) error
		target        models.OrderStatus
		moved         bool
		repoError     error
		expectedError string
	}{
		{
			name:   "cancel after compensation",
			run:    (*ProjectOrderOutcome).Cancel,
			target: models.OrderStatusCancelled,
			moved:  true,
		},
		{
			name:   "complete on success notification",
			run:    (*ProjectOrderOutcome).Complete,
			target: models.OrderStatusCompleted,
			moved:  true,
		},
		{
			name:   "fail on failure notification",
			run:    (*ProjectOrderOutcome).Fail,
			target: models.OrderStatusFailed,
			moved:  true,
		},
		{
			name:   "stale notification changes nothing",
			run:    (*ProjectOrderOutcome).Cancel,
			target: models.OrderStatusCancelled,
			moved:  false,
		},
		{
			name:          "repository error",
			run:           (*ProjectOrderOutcome).Cancel,
			target:        models.OrderStatusCancelled,
			repoError:     errors.New("database error"),
			expectedError: "failed to update order status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockRepo.EXPECT().UpdateStatus(mock.Anything, orderID, models.OrderStatusPending, tt.target).
				Return(tt.moved, tt.repoError).Once()

			useCase := NewProjectOrderOutcome(mockRepo, zap.NewNop())

			err := tt.run(useCase, context.Background(), &OrderOutcomeCommand{OrderID: orderID})

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProjectOrderOutcome_MissingOrderID(t *testing.T) {
	useCase := NewProjectOrderOutcome(mocks.NewMockOrderRepository(t), zap.NewNop())

	err := useCase.Cancel(context.Background(), &OrderOutcomeCommand{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "order ID is required")
}
