package webhook

import (
	"context"

	"sealog-webhooks/internal/domain/subscription"
)

// SyncProcessor processes webhooks synchronously by calling the service directly.
type SyncProcessor struct {
	subscriptions *subscription.Service
}

func NewSyncProcessor(subscriptions *subscription.Service) *SyncProcessor {
	return &SyncProcessor{subscriptions: subscriptions}
}

func (p *SyncProcessor) ProcessSubscriptionEvent(ctx context.Context, event subscription.ProviderEvent) error {
	return p.subscriptions.ProcessProviderEvent(ctx, event)
}
