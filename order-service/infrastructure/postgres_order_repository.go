package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orderflow/order-system/order-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// postgresOrder represents an order in the database
type postgresOrder struct {
	OrderID   string          `db:"order_id"`
	UserID    string          `db:"user_id"`
	Items     json.RawMessage `db:"items"`
	Status    string          `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// Insert saves a newly placed order
func (r *PostgresOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			order_id, user_id, items, status, created_at, updated_at
		) VALUES (
			:order_id, :user_id, :items, :status, :created_at, :updated_at
		)`

	items, err := json.Marshal(order.Items)
	if err != nil {
		return errors.Wrap(err, "failed to marshal order items")
	}

	_, err = r.db.NamedExecContext(ctx, query, &postgresOrder{
		OrderID:   order.OrderID.String(),
		UserID:    order.UserID.String(),
		Items:     items,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert order")
	}

	return nil
}

// FindByID finds an order by ID
func (r *PostgresOrderRepository) FindByID(ctx context.Context, orderID models.ID) (*models.Order, error) {
	query := `
		SELECT order_id, user_id, items, status, created_at, updated_at
		FROM orders
		WHERE order_id = $1`

	var pgOrder postgresOrder
	err := r.db.GetContext(ctx, &pgOrder, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Order not found
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	return r.toDomain(&pgOrder)
}

// UpdateStatus moves the order between statuses. The from-condition keeps a
// late notification from overwriting a terminal status; returns whether a
// row actually moved.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, orderID models.ID, from, to models.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE order_id = $3 AND status = $4`

	res, err := r.db.ExecContext(ctx, query, string(to), time.Now(), orderID.String(), string(from))
	if err != nil {
		return false, errors.Wrap(err, "failed to update order status")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read update result")
	}

	return rows > 0, nil
}

// toDomain converts postgres model to the shared order record
func (r *PostgresOrderRepository) toDomain(pgOrder *postgresOrder) (*models.Order, error) {
	orderID, err := models.NewID(pgOrder.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	userID, err := models.NewID(pgOrder.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}

	var items []models.OrderItem
	if err := json.Unmarshal(pgOrder.Items, &items); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal order items")
	}

	return &models.Order{
		OrderID:   orderID,
		UserID:    userID,
		Items:     items,
		Status:    models.OrderStatus(pgOrder.Status),
		CreatedAt: pgOrder.CreatedAt,
		UpdatedAt: pgOrder.UpdatedAt,
	}, nil
}
