package application

import (
	"context"
	"testing"

	"github.com/orderflow/order-system/notification-service/domain"
	"github.com/orderflow/order-system/notification-service/mocks"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestRecordNotification_Execute(t *testing.T) {
	orderID := models.GenerateUUID()

	tests := []struct {
		name          string
		command       *RecordNotificationCommand
		setupMocks    func(*mocks.MockNotificationRepository)
		expectedError string
	}{
		{
			name: "records a success notification",
			command: &RecordNotificationCommand{
				OrderID: orderID,
				Outcome: domain.OutcomeSuccess,
			},
			setupMocks: func(repo *mocks.MockNotificationRepository) {
				repo.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
					return n.OrderID == orderID && n.Outcome == domain.OutcomeSuccess
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name: "records a failure notification with its reason",
			command: &RecordNotificationCommand{
				OrderID: orderID,
				Outcome: domain.OutcomeFailure,
				Reason:  "insufficient inventory",
			},
			setupMocks: func(repo *mocks.MockNotificationRepository) {
				repo.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
					return n.Outcome == domain.OutcomeFailure && n.Reason == "insufficient inventory"
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name: "redelivered outcome is absorbed silently",
			command: &RecordNotificationCommand{
				OrderID: orderID,
				Outcome: domain.OutcomeSuccess,
			},
			setupMocks: func(repo *mocks.MockNotificationRepository) {
				repo.EXPECT().Insert(mock.Anything, mock.Anything).
					Return(domain.ErrNotificationExists).Once()
			},
			expectedError: "",
		},
		{
			name:          "missing order ID",
			command:       &RecordNotificationCommand{Outcome: domain.OutcomeSuccess},
			setupMocks:    func(repo *mocks.MockNotificationRepository) {},
			expectedError: "order ID is required",
		},
		{
			name: "unknown outcome",
			command: &RecordNotificationCommand{
				OrderID: orderID,
				Outcome: domain.Outcome("pending"),
			},
			setupMocks:    func(repo *mocks.MockNotificationRepository) {},
			expectedError: "unknown notification outcome",
		},
		{
			name: "repository error surfaces for redelivery",
			command: &RecordNotificationCommand{
				OrderID: orderID,
				Outcome: domain.OutcomeFailure,
			},
			setupMocks: func(repo *mocks.MockNotificationRepository) {
				repo.EXPECT().Insert(mock.Anything, mock.Anything).
					Return(errors.New("database error")).Once()
			},
			expectedError: "failed to record notification",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockNotificationRepository(t)

			tt.setupMocks(mockRepo)

			useCase := NewRecordNotification(mockRepo, zap.NewNop())

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
