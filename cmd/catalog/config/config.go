package config

import "time"

// Config holds application configuration.
type Config struct {
	DatabaseURL         string        `env:"DATABASE_URL"`
	StaticCatalogPath   string        `env:"STATIC_CATALOG_PATH" envDefault:"static-catalog.json"`
	HTTPTimeout         time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	RefreshDelay        time.Duration `env:"REFRESH_DELAY" envDefault:"500ms"`
	ImportParallelLimit int           `env:"IMPORT_PARALLEL_LIMIT" envDefault:"8"`

	RabbitMQ RabbitMQ
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"catalog-ex"`
	Queue    string `env:"RABBITMQ_QUEUE" envDefault:"catalog-pipeline.commands"`
}
