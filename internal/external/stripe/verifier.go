package stripe

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"sealog-webhooks/internal/domain/subscription"
)

var eventKinds = map[stripe.EventType]subscription.EventKind{
	stripe.EventTypeCustomerSubscriptionCreated: subscription.EventSubscriptionCreated,
	stripe.EventTypeCustomerSubscriptionUpdated: subscription.EventSubscriptionUpdated,
	stripe.EventTypeCustomerSubscriptionDeleted: subscription.EventSubscriptionDeleted,
	stripe.EventTypeInvoicePaymentSucceeded:     subscription.EventPaymentSucceeded,
	stripe.EventTypeInvoicePaymentFailed:        subscription.EventPaymentFailed,
}

// Verifier checks webhook signatures and maps Stripe events to provider
// events. The second return value of VerifyAndParse is false for event
// types the service does not handle.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) VerifyAndParse(payload []byte, signature string) (subscription.ProviderEvent, bool, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return subscription.ProviderEvent{}, false, fmt.Errorf("verify webhook signature: %w", err)
	}

	kind, ok := eventKinds[event.Type]
	if !ok {
		return subscription.ProviderEvent{}, false, nil
	}

	out := subscription.ProviderEvent{
		ProviderEventID: event.ID,
		Kind:            kind,
		Payload:         event.Data.Raw,
		ReceivedAt:      time.Unix(event.Created, 0).UTC(),
	}

	switch event.Type {
	case stripe.EventTypeInvoicePaymentSucceeded, stripe.EventTypeInvoicePaymentFailed:
		var invoice struct {
			Subscription string `json:"subscription"`
		}
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return subscription.ProviderEvent{}, false, fmt.Errorf("parse invoice payload: %w", err)
		}
		out.SubscriptionID = invoice.Subscription
	default:
		var sub struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return subscription.ProviderEvent{}, false, fmt.Errorf("parse subscription payload: %w", err)
		}
		out.SubscriptionID = sub.ID
		if raw, ok := sub.Metadata["user_id"]; ok {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				out.UserID = id
			}
		}
	}

	return out, true, nil
}
