package handlers

import (
	"context"
	"testing"

	"github.com/orderflow/order-system/notification-service/application"
	"github.com/orderflow/order-system/notification-service/domain"
	"github.com/orderflow/order-system/notification-service/mocks"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newEventHandlers(repo *mocks.MockNotificationRepository) *NotificationEventHandlers {
	logger := zap.NewNop()
	return NewNotificationEventHandlers(application.NewRecordNotification(repo, logger), logger)
}

func TestNotificationEventHandlers_Handle(t *testing.T) {
	orderID := models.GenerateUUID()
	order := models.Order{OrderID: orderID}

	t.Run("success event records a success notification", func(t *testing.T) {
		mockRepo := mocks.NewMockNotificationRepository(t)

		mockRepo.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.OrderID == orderID && n.Outcome == domain.OutcomeSuccess
		})).Return(nil).Once()

		handlers := newEventHandlers(mockRepo)

		err := handlers.Handle(context.Background(), events.NewEvent(orderID, events.NotifySuccessTopic, order))

		assert.NoError(t, err)
	})

	t.Run("failure event carries the reason through", func(t *testing.T) {
		mockRepo := mocks.NewMockNotificationRepository(t)

		mockRepo.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.OrderID == orderID &&
				n.Outcome == domain.OutcomeFailure &&
				n.Reason == "payment declined"
		})).Return(nil).Once()

		handlers := newEventHandlers(mockRepo)

		event := events.NewEvent(orderID, events.NotifyFailureTopic, order).
			WithMetadata("reason", "payment declined")

		err := handlers.Handle(context.Background(), event)

		assert.NoError(t, err)
	})

	t.Run("event without order ID is dropped", func(t *testing.T) {
		mockRepo := mocks.NewMockNotificationRepository(t)

		handlers := newEventHandlers(mockRepo)

		event := events.NewEvent(orderID, events.NotifySuccessTopic, order)
		event.AggregateID = ""

		err := handlers.Handle(context.Background(), event)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Insert")
	})

	t.Run("unrelated topic is ignored", func(t *testing.T) {
		mockRepo := mocks.NewMockNotificationRepository(t)

		handlers := newEventHandlers(mockRepo)

		err := handlers.Handle(context.Background(), events.NewEvent(orderID, events.SagaStartTopic, order))

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Insert")
	})
}
