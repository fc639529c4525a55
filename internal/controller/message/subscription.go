package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sealog-webhooks/internal/controller/apperror"
	"sealog-webhooks/internal/domain/subscription"
	"sealog-webhooks/internal/messaging"
	"sealog-webhooks/pkg/logger"
)

// SubscriptionMessageController handles subscription webhook messages from Kafka.
type SubscriptionMessageController struct {
	logger  *logger.Logger
	service *subscription.Service
}

// NewSubscriptionMessageController creates a new subscription message controller.
func NewSubscriptionMessageController(l *logger.Logger, s *subscription.Service) *SubscriptionMessageController {
	return &SubscriptionMessageController{
		logger:  l,
		service: s,
	}
}

// HandleMessage processes a single subscription webhook message.
func (c *SubscriptionMessageController) HandleMessage(ctx context.Context, key, value []byte) error {
	var env messaging.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		c.logger.Error("Failed to unmarshal envelope: key=%s error=%v", string(key), err)
		return fmt.Errorf("unmarshal envelope: %w", err)
	}

	c.logger.Debug("Processing subscription message: event_id=%s key=%s type=%s",
		env.EventID, env.Key, env.Type)

	var event subscription.ProviderEvent
	if err := json.Unmarshal(env.Payload, &event); err != nil {
		c.logger.Error("Failed to unmarshal webhook payload: event_id=%s error=%v", env.EventID, err)
		return fmt.Errorf("unmarshal webhook: %w", err)
	}

	if err := c.service.ProcessProviderEvent(ctx, event); err != nil {
		// Idempotency: duplicate events are not errors
		if errors.Is(err, apperror.ErrEventAlreadyStored) {
			c.logger.Info("Duplicate subscription event ignored: event_id=%s provider_event_id=%s",
				env.EventID, event.ProviderEventID)
			return nil
		}

		// A missing user row will not appear by retrying, route to DLQ directly
		if errors.Is(err, apperror.ErrUserNotFound) {
			c.logger.Warn("Subscription event references unknown user: event_id=%s provider_event_id=%s",
				env.EventID, event.ProviderEventID)
			return messaging.Permanent(err)
		}

		c.logger.Error("Failed to process subscription webhook: event_id=%s provider_event_id=%s error=%v",
			env.EventID, event.ProviderEventID, err)
		return err
	}

	c.logger.Info("Subscription webhook processed: event_id=%s provider_event_id=%s kind=%s",
		env.EventID, event.ProviderEventID, event.Kind)

	return nil
}
