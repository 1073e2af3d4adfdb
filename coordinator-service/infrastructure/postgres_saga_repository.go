package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orderflow/order-system/coordinator-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// PostgresSagaRepository implements SagaRepository using PostgreSQL
type PostgresSagaRepository struct {
	db *sqlx.DB
}

// NewPostgresSagaRepository creates a new PostgresSagaRepository
func NewPostgresSagaRepository(db *sqlx.DB) *PostgresSagaRepository {
	return &PostgresSagaRepository{db: db}
}

// postgresSaga represents a saga record in the database
type postgresSaga struct {
	OrderID          string          `db:"order_id"`
	Status           string          `db:"status"`
	Steps            json.RawMessage `db:"steps"`
	CompensationData json.RawMessage `db:"compensation_data"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
	Version          int             `db:"version"`
}

// Insert admits a new saga. A second insert for the same order is refused
// with ErrSagaExists rather than overwriting the existing record, so
// duplicate saga.start deliveries cannot reset a saga in flight.
func (r *PostgresSagaRepository) Insert(ctx context.Context, saga *domain.SagaState) error {
	query := `
		INSERT INTO sagas (
			order_id, status, steps, compensation_data,
			created_at, updated_at, version
		) VALUES (
			:order_id, :status, :steps, :compensation_data,
			:created_at, :updated_at, :version
		)
		ON CONFLICT (order_id) DO NOTHING`

	pgSaga, err := r.toPostgres(saga)
	if err != nil {
		return err
	}

	res, err := r.db.NamedExecContext(ctx, query, pgSaga)
	if err != nil {
		return errors.Wrap(err, "failed to insert saga")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read insert result")
	}
	if rows == 0 {
		return domain.ErrSagaExists
	}

	return nil
}

// Update persists a transition, conditional on the version the transition
// was loaded at. A concurrent transition wins the race and this one gets
// ErrVersionConflict to reload and retry against.
func (r *PostgresSagaRepository) Update(ctx context.Context, saga *domain.SagaState) error {
	query := `
		UPDATE sagas
		SET status = :status, steps = :steps, updated_at = :updated_at, version = :version
		WHERE order_id = :order_id AND version = :old_version`

	steps, err := json.Marshal(saga.Steps)
	if err != nil {
		return errors.Wrap(err, "failed to marshal saga steps")
	}

	res, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"order_id":    saga.OrderID.String(),
		"status":      string(saga.Status),
		"steps":       json.RawMessage(steps),
		"updated_at":  saga.Timestamps.UpdatedAt,
		"version":     saga.Version.Value,
		"old_version": saga.Version.Value - 1, // Optimistic locking
	})
	if err != nil {
		return errors.Wrap(err, "failed to update saga")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read update result")
	}
	if rows == 0 {
		return domain.ErrVersionConflict
	}

	return nil
}

// FindByOrderID finds a saga by order ID
func (r *PostgresSagaRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.SagaState, error) {
	query := `
		SELECT order_id, status, steps, compensation_data,
			   created_at, updated_at, version
		FROM sagas
		WHERE order_id = $1`

	var pgSaga postgresSaga
	err := r.db.GetContext(ctx, &pgSaga, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Saga not found
		}
		return nil, errors.Wrap(err, "failed to find saga")
	}

	return r.toDomain(&pgSaga)
}

// FindStale returns non-terminal sagas that have made no progress since
// olderThan, oldest first, for the watchdog. That covers pending sagas whose
// step services never answered, and completing or compensating sagas whose
// publish never made it onto the wire.
func (r *PostgresSagaRepository) FindStale(ctx context.Context, olderThan time.Time, limit int) ([]*domain.SagaState, error) {
	query := `
		SELECT order_id, status, steps, compensation_data,
			   created_at, updated_at, version
		FROM sagas
		WHERE status IN ($1, $2, $3) AND updated_at < $4
		ORDER BY updated_at ASC
		LIMIT $5`

	var pgSagas []postgresSaga
	err := r.db.SelectContext(ctx, &pgSagas, query,
		string(domain.SagaStatusPending),
		string(domain.SagaStatusCompleting),
		string(domain.SagaStatusCompensating),
		olderThan, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find stale sagas")
	}

	sagas := make([]*domain.SagaState, len(pgSagas))
	for i, pgSaga := range pgSagas {
		saga, err := r.toDomain(&pgSaga)
		if err != nil {
			return nil, err
		}
		sagas[i] = saga
	}

	return sagas, nil
}

// toPostgres converts domain saga to postgres model
func (r *PostgresSagaRepository) toPostgres(saga *domain.SagaState) (*postgresSaga, error) {
	steps, err := json.Marshal(saga.Steps)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal saga steps")
	}

	compensationData, err := json.Marshal(saga.CompensationData)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal compensation data")
	}

	return &postgresSaga{
		OrderID:          saga.OrderID.String(),
		Status:           string(saga.Status),
		Steps:            steps,
		CompensationData: compensationData,
		CreatedAt:        saga.Timestamps.CreatedAt,
		UpdatedAt:        saga.Timestamps.UpdatedAt,
		Version:          saga.Version.Value,
	}, nil
}

// toDomain converts postgres model to domain saga
func (r *PostgresSagaRepository) toDomain(pgSaga *postgresSaga) (*domain.SagaState, error) {
	orderID, err := models.NewID(pgSaga.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid saga order ID")
	}

	var steps []domain.Step
	if err := json.Unmarshal(pgSaga.Steps, &steps); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal saga steps")
	}

	var compensationData models.Order
	if err := json.Unmarshal(pgSaga.CompensationData, &compensationData); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal compensation data")
	}

	return &domain.SagaState{
		OrderID:          orderID,
		Status:           domain.SagaStatus(pgSaga.Status),
		Steps:            steps,
		CompensationData: compensationData,
		Timestamps: models.Timestamps{
			CreatedAt: pgSaga.CreatedAt,
			UpdatedAt: pgSaga.UpdatedAt,
		},
		Version: models.Version{Value: pgSaga.Version},
	}, nil
}
