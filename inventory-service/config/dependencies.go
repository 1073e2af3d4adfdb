package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/orderflow/order-system/inventory-service/application"
	"github.com/orderflow/order-system/inventory-service/handlers"
	"github.com/orderflow/order-system/inventory-service/infrastructure"
	sharedinfra "github.com/orderflow/order-system/shared/infrastructure"
	"github.com/orderflow/order-system/shared/logging"
	"github.com/orderflow/order-system/shared/telemetry"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	InventoryRepository infrastructure.PostgresInventoryRepository

	// Use Cases
	ReserveInventory *application.ReserveInventory
	ReleaseInventory *application.ReleaseInventory
	GetStock         *application.GetStock

	// HTTP Handlers
	InventoryHandlers *handlers.InventoryHandlers

	// Event Handlers
	InventoryEventHandlers *handlers.InventoryEventHandlers

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
		telConfig := telemetry.InventoryServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
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

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, "inventory-service", logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories
	deps.InventoryRepository = *infrastructure.NewPostgresInventoryRepository(db)

	// Initialize use cases
	deps.ReserveInventory = application.NewReserveInventory(&deps.InventoryRepository, eventPublisher)
	deps.ReleaseInventory = application.NewReleaseInventory(&deps.InventoryRepository, logger)
	deps.GetStock = application.NewGetStock(&deps.InventoryRepository)

	// Initialize handlers
	deps.InventoryHandlers = handlers.NewInventoryHandlers(deps.GetStock)
	deps.InventoryEventHandlers = handlers.NewInventoryEventHandlers(deps.ReserveInventory, deps.ReleaseInventory, logger)

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
