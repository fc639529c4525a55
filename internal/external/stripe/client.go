package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"sealog-webhooks/internal/controller/apperror"
	"sealog-webhooks/internal/domain/gateway"
)

// Client implements gateway.Provider on top of the Stripe API.
type Client struct {
	sc *client.API
}

type Config struct {
	SecretKey string
	// BaseURL overrides the Stripe API host, used in integration tests.
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Timeout == 0 {
		httpClient.Timeout = 10 * time.Second
	}

	backendCfg := &stripe.BackendConfig{HTTPClient: httpClient}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}

	sc := &client.API{}
	sc.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	})

	return &Client{sc: sc}
}

func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (gateway.Subscription, error) {
	params := &stripe.SubscriptionParams{Params: stripe.Params{Context: ctx}}

	sub, err := c.sc.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return gateway.Subscription{}, fmt.Errorf("stripe get subscription: %w", err)
	}

	out := gateway.Subscription{
		ID:                 sub.ID,
		Status:             string(sub.Status),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		CurrentPeriodStart: time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
		Metadata:           sub.Metadata,
	}
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	return out, nil
}

func (c *Client) GetPlan(ctx context.Context, priceID string) (gateway.Plan, error) {
	price, err := c.sc.Prices.Get(priceID, &stripe.PriceParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		if isNotFound(err) {
			return gateway.Plan{}, apperror.ErrPlanNotFound
		}
		return gateway.Plan{}, fmt.Errorf("stripe get price: %w", err)
	}

	plan := gateway.Plan{
		PriceID:    price.ID,
		UnitAmount: price.UnitAmount,
		Currency:   string(price.Currency),
	}
	if price.Recurring != nil {
		plan.Recurring = true
		plan.Interval = string(price.Recurring.Interval)
		plan.IntervalCount = price.Recurring.IntervalCount
		plan.TrialPeriodDays = price.Recurring.TrialPeriodDays
	}
	if price.Product == nil {
		return plan, nil
	}

	plan.ProductID = price.Product.ID
	product, err := c.sc.Products.Get(price.Product.ID, &stripe.ProductParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return gateway.Plan{}, fmt.Errorf("stripe get product: %w", err)
	}
	plan.ProductName = product.Name
	plan.Description = product.Description

	return plan, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req gateway.CheckoutRequest) (gateway.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: req.Metadata,
		},
	}
	params.Metadata = req.Metadata

	// an existing customer keeps their payment methods on the session,
	// otherwise Stripe creates a customer from the email
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else if req.UserEmail != "" {
		params.CustomerEmail = stripe.String(req.UserEmail)
	}

	session, err := c.sc.CheckoutSessions.New(params)
	if err != nil {
		if isNotFound(err) {
			return gateway.CheckoutSession{}, apperror.ErrPlanNotFound
		}
		return gateway.CheckoutSession{}, fmt.Errorf("stripe create checkout session: %w", err)
	}

	return gateway.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func isNotFound(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode == http.StatusNotFound ||
			stripeErr.Code == stripe.ErrorCodeResourceMissing
	}
	return false
}
