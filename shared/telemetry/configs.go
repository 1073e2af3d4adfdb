package telemetry

// Predefined service configurations
var (
	CoordinatorConfig = Config{
		ServiceName:    "saga-coordinator",
		ServiceVersion: "1.0.0",
	}

	OrderServiceConfig = Config{
		ServiceName:    "order-service",
		ServiceVersion: "1.0.0",
	}

	InventoryServiceConfig = Config{
		ServiceName:    "inventory-service",
		ServiceVersion: "1.0.0",
	}

	PaymentServiceConfig = Config{
		ServiceName:    "payment-service",
		ServiceVersion: "1.0.0",
	}

	NotificationServiceConfig = Config{
		ServiceName:    "notification-service",
		ServiceVersion: "1.0.0",
	}
)

// WithOTLPEndpoint sets the OTLP endpoint for a config
func (c Config) WithOTLPEndpoint(endpoint string) Config {
	c.OTLPEndpoint = endpoint
	return c
}

// WithVersion sets the service version for a config
func (c Config) WithVersion(version string) Config {
	c.ServiceVersion = version
	return c
}
