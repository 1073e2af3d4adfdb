package application

import (
	"context"
	"testing"

	"github.com/orderflow/order-system/payment-service/mocks"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestRefundPayment_Execute(t *testing.T) {
	orderID := models.GenerateUUID()

	tests := []struct {
		name          string
		command       *RefundPaymentCommand
		setupMocks    func(*mocks.MockPaymentRepository)
		expectedError string
	}{
		{
			name:    "refunds an approved payment",
			command: &RefundPaymentCommand{OrderID: orderID},
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.EXPECT().MarkRefunded(mock.Anything, orderID).Return(true, nil).Once()
			},
			expectedError: "",
		},
		{
			name:    "nothing to refund is not an error",
			command: &RefundPaymentCommand{OrderID: orderID},
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.EXPECT().MarkRefunded(mock.Anything, orderID).Return(false, nil).Once()
			},
			expectedError: "",
		},
		{
			name:          "missing order ID",
			command:       &RefundPaymentCommand{},
			setupMocks:    func(repo *mocks.MockPaymentRepository) {},
			expectedError: "order ID is required",
		},
		{
			name:    "repository error surfaces for redelivery",
			command: &RefundPaymentCommand{OrderID: orderID},
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.EXPECT().MarkRefunded(mock.Anything, orderID).
					Return(false, errors.New("database error")).Once()
			},
			expectedError: "failed to refund payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockPaymentRepository(t)

			tt.setupMocks(mockRepo)

			useCase := NewRefundPayment(mockRepo, zap.NewNop())

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
