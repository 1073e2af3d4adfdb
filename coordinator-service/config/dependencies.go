package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/orderflow/order-system/coordinator-service/application"
	"github.com/orderflow/order-system/coordinator-service/handlers"
	"github.com/orderflow/order-system/coordinator-service/infrastructure"
	sharedinfra "github.com/orderflow/order-system/shared/infrastructure"
	"github.com/orderflow/order-system/shared/logging"
	"github.com/orderflow/order-system/shared/telemetry"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	SagaRepository infrastructure.PostgresSagaRepository
	EventStore     *sharedinfra.PostgresEventStore

	// Use Cases
	StartSaga                *application.StartSaga
	ProcessInventoryReserved *application.ProcessInventoryReserved
	ProcessPaymentApproved   *application.ProcessPaymentApproved
	CompensateSaga           *application.CompensateSaga
	SweepStaleSagas          *application.SweepStaleSagas

	// Event Handlers
	SagaEventHandlers *handlers.SagaEventHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()

	// Logging
	Logger *zap.Logger
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	logger, err := logging.NewLogger(config.ServiceName, config.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	deps.Logger = logger

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.CoordinatorConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			log.Printf("Failed to initialize telemetry: %v", err)
			// Continue without telemetry rather than failing
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, "saga-coordinator", logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories
	deps.SagaRepository = *infrastructure.NewPostgresSagaRepository(db)
	deps.EventStore = sharedinfra.NewPostgresEventStore(db)

	// Initialize use cases
	deps.StartSaga = application.NewStartSaga(&deps.SagaRepository, eventPublisher)
	deps.ProcessInventoryReserved = application.NewProcessInventoryReserved(&deps.SagaRepository, eventPublisher)
	deps.ProcessPaymentApproved = application.NewProcessPaymentApproved(&deps.SagaRepository, eventPublisher)
	deps.CompensateSaga = application.NewCompensateSaga(&deps.SagaRepository, eventPublisher)
	deps.SweepStaleSagas = application.NewSweepStaleSagas(
		&deps.SagaRepository,
		deps.CompensateSaga,
		deps.ProcessPaymentApproved,
		config.Saga.Deadline,
		config.Saga.SweepBatchSize,
		logger,
	)

	// Initialize handlers
	deps.SagaEventHandlers = handlers.NewSagaEventHandlers(
		deps.StartSaga,
		deps.ProcessInventoryReserved,
		deps.ProcessPaymentApproved,
		deps.CompensateSaga,
		deps.EventStore,
		logger,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
