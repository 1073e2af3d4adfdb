package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

var _ events.EventStore = (*PostgresEventStore)(nil)

// PostgresEventStore keeps the append-only audit stream of everything the
// coordinator consumed or emitted, keyed by order.
type PostgresEventStore struct {
	db *sqlx.DB
}

// NewPostgresEventStore creates a new PostgresEventStore
func NewPostgresEventStore(db *sqlx.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

type postgresEvent struct {
	ID            string    `db:"id"`
	AggregateID   string    `db:"aggregate_id"`
	Topic         string    `db:"topic"`
	Version       string    `db:"version"`
	Data          []byte    `db:"data"`
	Metadata      []byte    `db:"metadata"`
	Timestamp     time.Time `db:"timestamp"`
	CorrelationID string    `db:"correlation_id"`
}

// Append inserts events into the audit stream. Replayed events are absorbed
// by the primary-key conflict clause, so redelivered messages do not
// duplicate audit rows.
func (es *PostgresEventStore) Append(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	tx, err := es.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
		INSERT INTO saga_events (
			id, aggregate_id, topic, version, data, metadata,
			timestamp, correlation_id
		) VALUES (
			:id, :aggregate_id, :topic, :version, :data, :metadata,
			:timestamp, :correlation_id
		) ON CONFLICT (id) DO NOTHING`

	for _, event := range evts {
		pgEvent, err := es.toPostgres(event)
		if err != nil {
			return errors.Wrap(err, "failed to convert event")
		}

		if _, err := tx.NamedExecContext(ctx, query, pgEvent); err != nil {
			return errors.Wrap(err, "failed to insert event")
		}
	}

	return tx.Commit()
}

// GetByAggregateID retrieves the full stream for one order
func (es *PostgresEventStore) GetByAggregateID(ctx context.Context, aggregateID models.ID) ([]*events.Event, error) {
	query := `
		SELECT id, aggregate_id, topic, version, data, metadata,
			   timestamp, correlation_id
		FROM saga_events
		WHERE aggregate_id = $1
		ORDER BY timestamp ASC`

	var pgEvents []postgresEvent
	err := es.db.SelectContext(ctx, &pgEvents, query, aggregateID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get events")
	}

	return es.toDomainAll(pgEvents)
}

// GetByTopic retrieves events by routing key with pagination
func (es *PostgresEventStore) GetByTopic(ctx context.Context, topic events.Topic, offset, limit int) ([]*events.Event, error) {
	query := `
		SELECT id, aggregate_id, topic, version, data, metadata,
			   timestamp, correlation_id
		FROM saga_events
		WHERE topic = $1
		ORDER BY timestamp ASC
		LIMIT $2 OFFSET $3`

	var pgEvents []postgresEvent
	err := es.db.SelectContext(ctx, &pgEvents, query, topic.String(), limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get events by topic")
	}

	return es.toDomainAll(pgEvents)
}

func (es *PostgresEventStore) toPostgres(event *events.Event) (*postgresEvent, error) {
	data, err := event.MarshalPayload()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event data")
	}

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event metadata")
	}

	return &postgresEvent{
		ID:            event.ID.String(),
		AggregateID:   event.AggregateID.String(),
		Topic:         event.Topic.String(),
		Version:       event.Version,
		Data:          data,
		Metadata:      metadata,
		Timestamp:     event.Timestamp,
		CorrelationID: event.CorrelationID.String(),
	}, nil
}

func (es *PostgresEventStore) toDomainAll(pgEvents []postgresEvent) ([]*events.Event, error) {
	result := make([]*events.Event, len(pgEvents))
	for i := range pgEvents {
		event, err := es.toDomain(&pgEvents[i])
		if err != nil {
			return nil, err
		}
		result[i] = event
	}
	return result, nil
}

func (es *PostgresEventStore) toDomain(pgEvent *postgresEvent) (*events.Event, error) {
	topic, err := events.NewTopic(pgEvent.Topic)
	if err != nil {
		return nil, errors.Wrap(err, "invalid topic")
	}

	metadata := make(events.Metadata)
	if len(pgEvent.Metadata) > 0 {
		if err := json.Unmarshal(pgEvent.Metadata, &metadata); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal event metadata")
		}
	}

	return &events.Event{
		ID:            models.ID(pgEvent.ID),
		AggregateID:   models.ID(pgEvent.AggregateID),
		Topic:         topic,
		Version:       pgEvent.Version,
		Data:          json.RawMessage(pgEvent.Data),
		Metadata:      metadata,
		Timestamp:     pgEvent.Timestamp,
		CorrelationID: models.ID(pgEvent.CorrelationID),
	}, nil
}
