package application

import (
	"context"

	"github.com/orderflow/order-system/notification-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// GetNotificationsQuery requests the notifications delivered for an order
type GetNotificationsQuery struct {
	OrderID string `json:"order_id"`
}

// GetNotifications retrieves notifications by order ID
type GetNotifications struct {
	notificationRepository domain.NotificationRepository
}

// NewGetNotifications creates a new GetNotifications use case
func NewGetNotifications(notificationRepository domain.NotificationRepository) *GetNotifications {
	return &GetNotifications{notificationRepository: notificationRepository}
}

// Execute retrieves the notifications
func (uc *GetNotifications) Execute(ctx context.Context, query *GetNotificationsQuery) ([]domain.Notification, error) {
	orderID, err := models.NewID(query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	notifications, err := uc.notificationRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load notifications")
	}

	return notifications, nil
}
