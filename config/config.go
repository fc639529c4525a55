package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"8000"`
	PgURL     string `env:"DATABASE_URL,required"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	StripeSecretKey     string        `env:"STRIPE_SECRET_KEY,required"`
	StripeWebhookSecret string        `env:"STRIPE_WEBHOOK_SECRET,required"`
	StripeAPIBaseURL    string        `env:"STRIPE_API_BASE_URL"`
	StripeClientTimeout time.Duration `env:"STRIPE_CLIENT_TIMEOUT" envDefault:"20s"`

	// BaseURL of the main application, used for default checkout
	// success/cancel redirects.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8501"`

	// Webhook processing mode: "sync" (in-request) or "kafka" (async via Kafka)
	WebhookMode string `env:"WEBHOOK_MODE" envDefault:"sync"`

	// Kafka configuration (kafka mode only)
	KafkaBrokers                    []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaSubscriptionsTopic         string   `env:"KAFKA_SUBSCRIPTIONS_TOPIC" envDefault:"webhooks.subscriptions"`
	KafkaSubscriptionsConsumerGroup string   `env:"KAFKA_SUBSCRIPTIONS_CONSUMER_GROUP" envDefault:"sealog-webhooks"`
	KafkaSubscriptionsDLQTopic      string   `env:"KAFKA_SUBSCRIPTIONS_DLQ_TOPIC" envDefault:"webhooks.subscriptions.dlq"`

	// Optional OpenSearch mirror for subscription events. When configured,
	// processed events are indexed there and the events API reads from it.
	OpensearchURLs        []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexEvents string   `env:"OPENSEARCH_INDEX_SUBSCRIPTION_EVENTS" envDefault:"subscription-events"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
