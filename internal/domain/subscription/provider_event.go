package subscription

import (
	"encoding/json"
	"time"
)

// ProviderEvent is a verified Stripe webhook event reduced to what the
// service needs. UserID is zero when the provider payload carried no
// user_id metadata; the service then falls back to the metadata of the
// retrieved subscription.
type ProviderEvent struct {
	ProviderEventID string          `json:"provider_event_id"`
	Kind            EventKind       `json:"kind"`
	SubscriptionID  string          `json:"subscription_id"`
	UserID          int64           `json:"user_id,omitempty"`
	Payload         json.RawMessage `json:"payload"`
	ReceivedAt      time.Time       `json:"received_at"`
}
