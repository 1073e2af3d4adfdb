package infrastructure

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/orderflow/order-system/inventory-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*PostgresInventoryRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	return NewPostgresInventoryRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func reservableOrder() models.Order {
	return models.Order{
		OrderID: models.GenerateUUID(),
		UserID:  models.GenerateUUID(),
		Items: []models.OrderItem{
			{
				ProductID: models.GenerateUUID(),
				Quantity:  2,
				UnitPrice: models.NewMoney(500, "USD"),
			},
		},
		Status: models.OrderStatusPending,
	}
}

func TestPostgresInventoryRepository_ReserveOrder(t *testing.T) {
	t.Run("covers every line and commits", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		order := reservableOrder()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO inventory_reservations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE inventory").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ReserveOrder(context.Background(), order)

		assert.NoError(t, err)
	})

	t.Run("shortage rolls the whole attempt back", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		order := reservableOrder()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO inventory_reservations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE inventory").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.ReserveOrder(context.Background(), order)

		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("lines sharing a product reserve the summed quantity once", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		productID := models.GenerateUUID()
		order := models.Order{
			OrderID: models.GenerateUUID(),
			UserID:  models.GenerateUUID(),
			Items: []models.OrderItem{
				{ProductID: productID, Quantity: 2, UnitPrice: models.NewMoney(500, "USD")},
				{ProductID: productID, Quantity: 3, UnitPrice: models.NewMoney(500, "USD")},
			},
			Status: models.OrderStatusPending,
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO inventory_reservations").
			WithArgs(order.OrderID.String(), productID.String(), 5, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE inventory").
			WithArgs(5, sqlmock.AnyArg(), productID.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ReserveOrder(context.Background(), order)

		assert.NoError(t, err)
	})

	t.Run("redelivered line skips the decrement", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		order := reservableOrder()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO inventory_reservations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.ReserveOrder(context.Background(), order)

		assert.NoError(t, err)
	})
}

func TestPostgresInventoryRepository_ReleaseOrder(t *testing.T) {
	columns := []string{"order_id", "product_id", "quantity", "created_at"}

	t.Run("restores stock and deletes reservations", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		orderID := models.GenerateUUID()
		productID := models.GenerateUUID()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM inventory_reservations").
			WithArgs(orderID.String()).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(orderID.String(), productID.String(), 2, time.Now()))
		mock.ExpectExec("UPDATE inventory").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM inventory_reservations").
			WithArgs(orderID.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		released, err := repo.ReleaseOrder(context.Background(), orderID)

		require.NoError(t, err)
		assert.Equal(t, 1, released)
	})

	t.Run("nothing held is a no-op", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		orderID := models.GenerateUUID()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM inventory_reservations").
			WithArgs(orderID.String()).
			WillReturnRows(sqlmock.NewRows(columns))
		mock.ExpectRollback()

		released, err := repo.ReleaseOrder(context.Background(), orderID)

		require.NoError(t, err)
		assert.Zero(t, released)
	})
}
