package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/orderflow/order-system/notification-service/application"
	"github.com/orderflow/order-system/notification-service/handlers"
	"github.com/orderflow/order-system/notification-service/infrastructure"
	sharedinfra "github.com/orderflow/order-system/shared/infrastructure"
	"github.com/orderflow/order-system/shared/logging"
	"github.com/orderflow/order-system/shared/telemetry"
	"go.uber.org/zap"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	NotificationRepository infrastructure.PostgresNotificationRepository

	// Use Cases
	RecordNotification *application.RecordNotification
	GetNotifications   *application.GetNotifications

	// HTTP Handlers
	NotificationHandlers *handlers.NotificationHandlers

	// Event Handlers
	NotificationEventHandlers *handlers.NotificationEventHandlers

	// Infrastructure
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
		telConfig := telemetry.NotificationServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
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
	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, "notification-service", logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories
	deps.NotificationRepository = *infrastructure.NewPostgresNotificationRepository(db)

	// Initialize use cases
	deps.RecordNotification = application.NewRecordNotification(&deps.NotificationRepository, logger)
	deps.GetNotifications = application.NewGetNotifications(&deps.NotificationRepository)

	// Initialize handlers
	deps.NotificationHandlers = handlers.NewNotificationHandlers(deps.GetNotifications)
	deps.NotificationEventHandlers = handlers.NewNotificationEventHandlers(deps.RecordNotification, logger)

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
