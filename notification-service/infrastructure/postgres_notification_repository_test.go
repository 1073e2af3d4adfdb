package infrastructure

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/orderflow/order-system/notification-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*PostgresNotificationRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	return NewPostgresNotificationRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPostgresNotificationRepository_Insert(t *testing.T) {
	notification := domain.RecordNotification(models.GenerateUUID(), domain.OutcomeFailure, "payment declined")

	t.Run("records a fresh notification", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Insert(context.Background(), notification)

		assert.NoError(t, err)
	})

	t.Run("redelivered outcome is refused", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Insert(context.Background(), notification)

		assert.ErrorIs(t, err, domain.ErrNotificationExists)
	})
}

func TestPostgresNotificationRepository_FindByOrderID(t *testing.T) {
	t.Run("returns notifications oldest first", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		orderID := models.GenerateUUID()

		rows := sqlmock.NewRows([]string{
			"id", "order_id", "outcome", "reason", "created_at", "updated_at",
		}).AddRow(
			models.GenerateUUID().String(), orderID.String(),
			string(domain.OutcomeFailure), "saga deadline exceeded",
			time.Now(), time.Now(),
		)
		mock.ExpectQuery("SELECT (.+) FROM notifications").
			WithArgs(orderID.String()).
			WillReturnRows(rows)

		notifications, err := repo.FindByOrderID(context.Background(), orderID)

		assert.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, orderID, notifications[0].OrderID)
		assert.Equal(t, domain.OutcomeFailure, notifications[0].Outcome)
		assert.Equal(t, "saga deadline exceeded", notifications[0].Reason)
	})

	t.Run("no notifications yields an empty slice", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		orderID := models.GenerateUUID()

		mock.ExpectQuery("SELECT (.+) FROM notifications").
			WithArgs(orderID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		notifications, err := repo.FindByOrderID(context.Background(), orderID)

		assert.NoError(t, err)
		assert.Empty(t, notifications)
	})
}
