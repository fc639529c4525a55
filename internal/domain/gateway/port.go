package gateway

import (
	"context"
	"time"
)

//go:generate mockgen -source port.go -destination mock_port.go -package gateway

// Provider is the billing provider (Stripe) surface the domain depends on.
type Provider interface {
	GetSubscription(ctx context.Context, subscriptionID string) (Subscription, error)
	GetPlan(ctx context.Context, priceID string) (Plan, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
}

// Subscription is the provider's authoritative view of a subscription.
type Subscription struct {
	ID                 string
	CustomerID         string
	Status             string
	CancelAtPeriodEnd  bool
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	Metadata           map[string]string
}

// Plan is a price with its product details, as shown on the pricing page.
type Plan struct {
	PriceID         string `json:"price_id"`
	ProductID       string `json:"product_id,omitempty"`
	ProductName     string `json:"product_name,omitempty"`
	Description     string `json:"description,omitempty"`
	UnitAmount      int64  `json:"unit_amount"`
	Currency        string `json:"currency"`
	Recurring       bool   `json:"recurring"`
	Interval        string `json:"interval,omitempty"`
	IntervalCount   int64  `json:"interval_count,omitempty"`
	TrialPeriodDays int64  `json:"trial_period_days,omitempty"`
}

type CheckoutRequest struct {
	PriceID    string
	UserID     int64
	UserEmail  string
	CustomerID string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}
