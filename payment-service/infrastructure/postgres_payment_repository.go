package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orderflow/order-system/payment-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	db *sqlx.DB
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db *sqlx.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// postgresPayment represents a payment in the database
type postgresPayment struct {
	ID        string    `db:"id"`
	OrderID   string    `db:"order_id"`
	UserID    string    `db:"user_id"`
	Amount    int64     `db:"amount"`
	Currency  string    `db:"currency"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Insert records a payment outcome. The unique order constraint is what
// keeps a redelivered charge command from producing a second decision.
func (r *PostgresPaymentRepository) Insert(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, order_id, user_id, amount, currency, status, created_at, updated_at
		) VALUES (
			:id, :order_id, :user_id, :amount, :currency, :status, :created_at, :updated_at
		)
		ON CONFLICT (order_id) DO NOTHING`

	res, err := r.db.NamedExecContext(ctx, query, &postgresPayment{
		ID:        payment.ID.String(),
		OrderID:   payment.OrderID.String(),
		UserID:    payment.UserID.String(),
		Amount:    payment.Amount.Amount,
		Currency:  payment.Amount.Currency,
		Status:    string(payment.Status),
		CreatedAt: payment.Timestamps.CreatedAt,
		UpdatedAt: payment.Timestamps.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert payment")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read insert result")
	}
	if rows == 0 {
		return domain.ErrPaymentExists
	}

	return nil
}

// FindByOrderID finds a payment by order ID
func (r *PostgresPaymentRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.Payment, error) {
	query := `
		SELECT id, order_id, user_id, amount, currency, status, created_at, updated_at
		FROM payments
		WHERE order_id = $1`

	var pgPayment postgresPayment
	err := r.db.GetContext(ctx, &pgPayment, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Payment not found
		}
		return nil, errors.Wrap(err, "failed to find payment")
	}

	return r.toDomain(&pgPayment)
}

// MarkRefunded moves an approved payment to refunded; reports whether a row
// actually moved
func (r *PostgresPaymentRepository) MarkRefunded(ctx context.Context, orderID models.ID) (bool, error) {
	query := `
		UPDATE payments
		SET status = $1, updated_at = $2
		WHERE order_id = $3 AND status = $4`

	res, err := r.db.ExecContext(ctx, query,
		string(domain.PaymentStatusRefunded), time.Now(),
		orderID.String(), string(domain.PaymentStatusApproved))
	if err != nil {
		return false, errors.Wrap(err, "failed to mark payment refunded")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read update result")
	}

	return rows > 0, nil
}

// toDomain converts postgres model to domain payment
func (r *PostgresPaymentRepository) toDomain(pgPayment *postgresPayment) (*domain.Payment, error) {
	id, err := models.NewID(pgPayment.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID")
	}

	orderID, err := models.NewID(pgPayment.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	userID, err := models.NewID(pgPayment.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}

	return &domain.Payment{
		ID:      id,
		OrderID: orderID,
		UserID:  userID,
		Amount:  models.NewMoney(pgPayment.Amount, pgPayment.Currency),
		Status:  domain.PaymentStatus(pgPayment.Status),
		Timestamps: models.Timestamps{
			CreatedAt: pgPayment.CreatedAt,
			UpdatedAt: pgPayment.UpdatedAt,
		},
	}, nil
}
