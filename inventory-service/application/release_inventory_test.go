package application

import (
	"context"
	"testing"

	"github.com/orderflow/order-system/inventory-service/mocks"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestReleaseInventory_Execute(t *testing.T) {
	orderID := models.GenerateUUID()

	t.Run("releases held stock", func(t *testing.T) {
		mockRepo := mocks.NewMockInventoryRepository(t)
		mockRepo.EXPECT().ReleaseOrder(mock.Anything, orderID).Return(2, nil).Once()

		useCase := NewReleaseInventory(mockRepo, zap.NewNop())

		err := useCase.Execute(context.Background(), &ReleaseInventoryCommand{OrderID: orderID})

		assert.NoError(t, err)
	})

	t.Run("redelivered release finds nothing", func(t *testing.T) {
		mockRepo := mocks.NewMockInventoryRepository(t)
		mockRepo.EXPECT().ReleaseOrder(mock.Anything, orderID).Return(0, nil).Once()

		useCase := NewReleaseInventory(mockRepo, zap.NewNop())

		err := useCase.Execute(context.Background(), &ReleaseInventoryCommand{OrderID: orderID})

		assert.NoError(t, err)
	})

	t.Run("missing order ID", func(t *testing.T) {
		useCase := NewReleaseInventory(mocks.NewMockInventoryRepository(t), zap.NewNop())

		err := useCase.Execute(context.Background(), &ReleaseInventoryCommand{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "order ID is required")
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := mocks.NewMockInventoryRepository(t)
		mockRepo.EXPECT().ReleaseOrder(mock.Anything, orderID).
			Return(0, errors.New("database error")).Once()

		useCase := NewReleaseInventory(mockRepo, zap.NewNop())

		err := useCase.Execute(context.Background(), &ReleaseInventoryCommand{OrderID: orderID})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to release reservations")
	})
}
