package webhook

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealog-webhooks/internal/domain/subscription"
	"sealog-webhooks/internal/messaging"
)

// mockPublisher captures the last published envelope for assertions.
type mockPublisher struct {
	lastEnvelope messaging.Envelope
	publishErr   error
}

func (m *mockPublisher) Publish(_ context.Context, env messaging.Envelope) error {
	m.lastEnvelope = env
	return m.publishErr
}

func (m *mockPublisher) Close() error {
	return nil
}

func TestAsyncProcessor_PartitionKey(t *testing.T) {
	t.Run("uses the user ID as partition key", func(t *testing.T) {
		// Arrange
		mockPub := &mockPublisher{}
		processor := NewAsyncProcessor(mockPub)

		event := subscription.ProviderEvent{
			ProviderEventID: "evt_123",
			Kind:            subscription.EventSubscriptionCreated,
			SubscriptionID:  "sub_AAA",
			UserID:          42, // Different from SubscriptionID!
			Payload:         json.RawMessage(`{}`),
			ReceivedAt:      time.Now(),
		}

		// Act
		err := processor.ProcessSubscriptionEvent(context.Background(), event)

		// Assert
		require.NoError(t, err)
		// Key MUST be the user ID so one user's events stay ordered
		assert.Equal(t, "42", mockPub.lastEnvelope.Key,
			"Partition key should be the user ID, not the subscription ID")
		assert.Equal(t, TypeSubscriptionWebhook, mockPub.lastEnvelope.Type)
	})

	t.Run("falls back to the subscription ID without a user", func(t *testing.T) {
		// Arrange
		mockPub := &mockPublisher{}
		processor := NewAsyncProcessor(mockPub)

		event := subscription.ProviderEvent{
			ProviderEventID: "evt_456",
			Kind:            subscription.EventPaymentSucceeded,
			SubscriptionID:  "sub_BBB",
			Payload:         json.RawMessage(`{}`),
			ReceivedAt:      time.Now(),
		}

		// Act
		err := processor.ProcessSubscriptionEvent(context.Background(), event)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "sub_BBB", mockPub.lastEnvelope.Key)
	})

	t.Run("round-trips the event through the envelope payload", func(t *testing.T) {
		mockPub := &mockPublisher{}
		processor := NewAsyncProcessor(mockPub)

		event := subscription.ProviderEvent{
			ProviderEventID: "evt_789",
			Kind:            subscription.EventPaymentFailed,
			SubscriptionID:  "sub_CCC",
			UserID:          7,
			Payload:         json.RawMessage(`{"id":"in_1"}`),
			ReceivedAt:      time.Now().UTC().Truncate(time.Second),
		}

		require.NoError(t, processor.ProcessSubscriptionEvent(context.Background(), event))

		var decoded subscription.ProviderEvent
		require.NoError(t, json.Unmarshal(mockPub.lastEnvelope.Payload, &decoded))
		assert.EqualValues(t, event, decoded)
	})
}
