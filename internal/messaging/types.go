package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the wire format of queued webhook events. The key doubles as
// the partition key so all events of one user stay ordered.
type Envelope struct {
	EventID   string          `json:"event_id"`
	Key       string          `json:"key"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope wraps payload with a fresh event ID and the current time.
func NewEnvelope(key, msgType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		EventID:   uuid.New().String(),
		Key:       key,
		Type:      msgType,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Publisher hands envelopes to the broker.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}

// MessageHandler processes one raw message. A nil return commits the
// offset; an error leaves the message for redelivery.
type MessageHandler func(ctx context.Context, key, value []byte) error

// Worker is a consumer loop feeding messages into a handler.
type Worker interface {
	Start(ctx context.Context, handler MessageHandler) error
	Close() error
}
