package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orderflow/order-system/inventory-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// PostgresInventoryRepository implements InventoryRepository using PostgreSQL
type PostgresInventoryRepository struct {
	db *sqlx.DB
}

// NewPostgresInventoryRepository creates a new PostgresInventoryRepository
func NewPostgresInventoryRepository(db *sqlx.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

type postgresStock struct {
	ProductID string    `db:"product_id"`
	Available int       `db:"available"`
	UpdatedAt time.Time `db:"updated_at"`
}

type postgresReservation struct {
	OrderID   string    `db:"order_id"`
	ProductID string    `db:"product_id"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
}

// ReserveOrder holds stock for every order line in one transaction. Lines
// sharing a product are merged first, so the reservation row carries the
// order's full quantity for that product. The conditional decrement is the
// check-and-reserve: a line whose stock row cannot absorb the quantity aborts
// the transaction, which also returns any lines already held in this attempt.
func (r *PostgresInventoryRepository) ReserveOrder(ctx context.Context, order models.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	for _, item := range mergeLines(order.Items) {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO inventory_reservations (order_id, product_id, quantity, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (order_id, product_id) DO NOTHING`,
			order.OrderID.String(), item.ProductID.String(), item.Quantity, time.Now())
		if err != nil {
			return errors.Wrap(err, "failed to insert reservation")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "failed to read reservation result")
		}
		if rows == 0 {
			// Redelivered command; this line is already held.
			continue
		}

		res, err = tx.ExecContext(ctx, `
			UPDATE inventory
			SET available = available - $1, updated_at = $2
			WHERE product_id = $3 AND available >= $1`,
			item.Quantity, time.Now(), item.ProductID.String())
		if err != nil {
			return errors.Wrap(err, "failed to decrement stock")
		}

		rows, err = res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "failed to read stock result")
		}
		if rows == 0 {
			return domain.ErrInsufficientStock
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit reservation")
	}

	return nil
}

// mergeLines sums quantities of lines sharing a product, keeping first-seen
// order. The reservation table holds one row per (order, product), so a
// duplicated product line would otherwise collide with its sibling and leave
// part of the quantity unreserved.
func mergeLines(items []models.OrderItem) []models.OrderItem {
	merged := make([]models.OrderItem, 0, len(items))
	index := make(map[models.ID]int, len(items))

	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	return merged
}

// ReleaseOrder returns the order's held stock and deletes its reservations
func (r *PostgresInventoryRepository) ReleaseOrder(ctx context.Context, orderID models.ID) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var reservations []postgresReservation
	err = tx.SelectContext(ctx, &reservations, `
		SELECT order_id, product_id, quantity, created_at
		FROM inventory_reservations
		WHERE order_id = $1
		FOR UPDATE`,
		orderID.String())
	if err != nil {
		return 0, errors.Wrap(err, "failed to load reservations")
	}

	if len(reservations) == 0 {
		return 0, nil
	}

	for _, reservation := range reservations {
		_, err := tx.ExecContext(ctx, `
			UPDATE inventory
			SET available = available + $1, updated_at = $2
			WHERE product_id = $3`,
			reservation.Quantity, time.Now(), reservation.ProductID)
		if err != nil {
			return 0, errors.Wrap(err, "failed to restore stock")
		}
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM inventory_reservations
		WHERE order_id = $1`,
		orderID.String())
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete reservations")
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit release")
	}

	return len(reservations), nil
}

// FindStock finds a stock level by product ID
func (r *PostgresInventoryRepository) FindStock(ctx context.Context, productID models.ID) (*domain.StockLevel, error) {
	query := `
		SELECT product_id, available, updated_at
		FROM inventory
		WHERE product_id = $1`

	var pgStock postgresStock
	err := r.db.GetContext(ctx, &pgStock, query, productID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Stock not found
		}
		return nil, errors.Wrap(err, "failed to find stock")
	}

	id, err := models.NewID(pgStock.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid product ID")
	}

	return &domain.StockLevel{
		ProductID: id,
		Available: pgStock.Available,
		UpdatedAt: pgStock.UpdatedAt,
	}, nil
}
