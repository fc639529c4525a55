package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// EventKind classifies a stored provider event.
type EventKind string

const (
	EventSubscriptionCreated EventKind = "subscription_created"
	EventSubscriptionUpdated EventKind = "subscription_updated"
	EventSubscriptionDeleted EventKind = "subscription_deleted"
	EventPaymentSucceeded    EventKind = "payment_succeeded"
	EventPaymentFailed       EventKind = "payment_failed"
)

var AvailableEventKinds = []EventKind{
	EventSubscriptionCreated,
	EventSubscriptionUpdated,
	EventSubscriptionDeleted,
	EventPaymentSucceeded,
	EventPaymentFailed,
}

func NewEventKind(raw string) (EventKind, error) {
	if slices.Contains(AvailableEventKinds, EventKind(raw)) {
		return EventKind(raw), nil
	}
	return "", fmt.Errorf("invalid event kind %q", raw)
}

// Event is a stored subscription event.
type Event struct {
	EventID string `json:"event_id"`
	NewEvent
}

// NewEvent is an event about to be stored.
type NewEvent struct {
	UserID          int64           `json:"user_id"`
	Kind            EventKind       `json:"kind"`
	ProviderEventID string          `json:"provider_event_id"`
	Data            json.RawMessage `json:"data"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EventQuery filters stored subscription events.
type EventQuery struct {
	UserIDs []int64     `json:"user_ids,omitempty" url:"user_ids,omitempty" form:"user_ids"`
	Kinds   []EventKind `json:"kinds,omitempty" url:"kinds,omitempty" form:"kinds"`

	TimeFrom *time.Time `json:"time_from,omitempty" url:"time_from,omitempty" form:"time_from"`
	TimeTo   *time.Time `json:"time_to,omitempty" url:"time_to,omitempty" form:"time_to"`

	Limit   int  `json:"limit,omitempty" url:"limit,omitempty" form:"limit"`
	SortAsc bool `json:"sort_asc,omitempty" url:"sort_asc,omitempty" form:"sort_asc"`
}

// EventSearcher is a secondary, search-oriented sink for processed events.
// Implementations must be idempotent on ProviderEventID.
type EventSearcher interface {
	IndexEvent(ctx context.Context, event Event) error
	SearchEvents(ctx context.Context, query EventQuery) ([]Event, error)
}
