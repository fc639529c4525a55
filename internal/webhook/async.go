package webhook

import (
	"context"
	"fmt"
	"strconv"

	"sealog-webhooks/internal/domain/subscription"
	"sealog-webhooks/internal/messaging"
)

// TypeSubscriptionWebhook is the envelope type of queued subscription events.
const TypeSubscriptionWebhook = "subscription.webhook"

// AsyncProcessor processes webhooks asynchronously by publishing to Kafka.
type AsyncProcessor struct {
	publisher messaging.Publisher
}

func NewAsyncProcessor(publisher messaging.Publisher) *AsyncProcessor {
	return &AsyncProcessor{publisher: publisher}
}

func (p *AsyncProcessor) ProcessSubscriptionEvent(ctx context.Context, event subscription.ProviderEvent) error {
	envelope, err := messaging.NewEnvelope(partitionKey(event), TypeSubscriptionWebhook, event)
	if err != nil {
		return fmt.Errorf("create envelope: %w", err)
	}
	return p.publisher.Publish(ctx, envelope)
}

// partitionKey keeps all events of one user on one partition so they are
// applied in order. Events without a resolved user fall back to the
// subscription ID.
func partitionKey(event subscription.ProviderEvent) string {
	if event.UserID != 0 {
		return strconv.FormatInt(event.UserID, 10)
	}
	return event.SubscriptionID
}
