package app

import (
	"context"

	"sealog-webhooks/config"
	"sealog-webhooks/internal/controller/message"
	"sealog-webhooks/internal/domain/subscription"
	"sealog-webhooks/internal/external/kafka"
	"sealog-webhooks/internal/messaging"
	"sealog-webhooks/pkg/logger"
)

// StartWorkers starts the Kafka consumer for queued subscription webhooks.
// It returns immediately and stops when ctx is cancelled.
func StartWorkers(
	ctx context.Context,
	l *logger.Logger,
	cfg config.Config,
	subscriptionService *subscription.Service,
) {
	dlqPub := kafka.NewDLQPublisher(l, cfg.KafkaBrokers, cfg.KafkaSubscriptionsDLQTopic)

	controller := message.NewSubscriptionMessageController(l, subscriptionService)
	handler := messaging.WithMetrics(
		cfg.KafkaSubscriptionsTopic,
		cfg.KafkaSubscriptionsConsumerGroup,
		messaging.WithDLQ(
			messaging.WithRetry(controller.HandleMessage, messaging.DefaultRetryConfig()),
			dlqPub,
		),
	)
	consumer := kafka.NewConsumer(
		l,
		cfg.KafkaBrokers,
		cfg.KafkaSubscriptionsTopic,
		cfg.KafkaSubscriptionsConsumerGroup,
	)
	runner := messaging.NewRunner(l, []messaging.Worker{consumer}, handler)

	go func() {
		defer dlqPub.Close()

		l.Info("Starting subscription webhook consumer: topic=%s group=%s",
			cfg.KafkaSubscriptionsTopic, cfg.KafkaSubscriptionsConsumerGroup)
		if err := runner.Start(ctx); err != nil {
			l.Error("Subscription runner failed: error=%v", err)
		}
	}()
}
