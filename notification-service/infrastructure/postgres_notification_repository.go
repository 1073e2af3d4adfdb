package infrastructure

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orderflow/order-system/notification-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// PostgresNotificationRepository implements NotificationRepository using PostgreSQL
type PostgresNotificationRepository struct {
	db *sqlx.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *sqlx.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// postgresNotification represents a notification in the database
type postgresNotification struct {
	ID        string    `db:"id"`
	OrderID   string    `db:"order_id"`
	Outcome   string    `db:"outcome"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Insert records a delivered notification. The unique order and outcome
// constraint absorbs redelivered outcome events.
func (r *PostgresNotificationRepository) Insert(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (
			id, order_id, outcome, reason, created_at, updated_at
		) VALUES (
			:id, :order_id, :outcome, :reason, :created_at, :updated_at
		)
		ON CONFLICT (order_id, outcome) DO NOTHING`

	res, err := r.db.NamedExecContext(ctx, query, &postgresNotification{
		ID:        notification.ID.String(),
		OrderID:   notification.OrderID.String(),
		Outcome:   string(notification.Outcome),
		Reason:    notification.Reason,
		CreatedAt: notification.Timestamps.CreatedAt,
		UpdatedAt: notification.Timestamps.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert notification")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read insert result")
	}
	if rows == 0 {
		return domain.ErrNotificationExists
	}

	return nil
}

// FindByOrderID finds all notifications delivered for an order
func (r *PostgresNotificationRepository) FindByOrderID(ctx context.Context, orderID models.ID) ([]domain.Notification, error) {
	query := `
		SELECT id, order_id, outcome, reason, created_at, updated_at
		FROM notifications
		WHERE order_id = $1
		ORDER BY created_at ASC`

	var pgNotifications []postgresNotification
	if err := r.db.SelectContext(ctx, &pgNotifications, query, orderID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to find notifications")
	}

	notifications := make([]domain.Notification, 0, len(pgNotifications))
	for i := range pgNotifications {
		notification, err := r.toDomain(&pgNotifications[i])
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *notification)
	}

	return notifications, nil
}

// toDomain converts postgres model to domain notification
func (r *PostgresNotificationRepository) toDomain(pgNotification *postgresNotification) (*domain.Notification, error) {
	id, err := models.NewID(pgNotification.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid notification ID")
	}

	orderID, err := models.NewID(pgNotification.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	return &domain.Notification{
		ID:      id,
		OrderID: orderID,
		Outcome: domain.Outcome(pgNotification.Outcome),
		Reason:  pgNotification.Reason,
		Timestamps: models.Timestamps{
			CreatedAt: pgNotification.CreatedAt,
			UpdatedAt: pgNotification.UpdatedAt,
		},
	}, nil
}
