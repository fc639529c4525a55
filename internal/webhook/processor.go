package webhook

import (
	"context"

	"sealog-webhooks/internal/domain/subscription"
)

// Processor accepts verified subscription webhooks for processing.
// Implementations either process inline or hand off to a queue.
type Processor interface {
	ProcessSubscriptionEvent(ctx context.Context, event subscription.ProviderEvent) error
}
