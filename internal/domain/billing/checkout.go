package billing

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"sealog-webhooks/internal/domain/gateway"
)

// CheckoutService starts provider checkout sessions and exposes plan
// details for the pricing page.
type CheckoutService struct {
	provider gateway.Provider
	baseURL  string
}

func NewCheckoutService(provider gateway.Provider, baseURL string) *CheckoutService {
	return &CheckoutService{provider: provider, baseURL: baseURL}
}

// CreateSessionRequest is the checkout session intent of a signed-in user.
type CreateSessionRequest struct {
	UserID     int64  `json:"user_id" binding:"required"`
	UserEmail  string `json:"user_email"`
	PriceID    string `json:"price_id" binding:"required"`
	CustomerID string `json:"customer_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// CreateSession opens a subscription checkout session at the provider.
// Redirect URLs default to the configured application base URL so the
// frontend can show the outcome banner after Stripe redirects back.
func (s *CheckoutService) CreateSession(ctx context.Context, req CreateSessionRequest) (gateway.CheckoutSession, error) {
	successURL := req.SuccessURL
	if successURL == "" {
		successURL = s.redirectURL(url.Values{
			"subscription_success": {"true"},
			"price_id":             {req.PriceID},
		})
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = s.redirectURL(url.Values{"subscription_cancelled": {"true"}})
	}

	session, err := s.provider.CreateCheckoutSession(ctx, gateway.CheckoutRequest{
		PriceID:    req.PriceID,
		UserID:     req.UserID,
		UserEmail:  req.UserEmail,
		CustomerID: req.CustomerID,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Metadata: map[string]string{
			"user_id":  strconv.FormatInt(req.UserID, 10),
			"price_id": req.PriceID,
		},
	})
	if err != nil {
		return gateway.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return session, nil
}

func (s *CheckoutService) GetPlan(ctx context.Context, priceID string) (gateway.Plan, error) {
	plan, err := s.provider.GetPlan(ctx, priceID)
	if err != nil {
		return gateway.Plan{}, fmt.Errorf("get plan %s: %w", priceID, err)
	}
	return plan, nil
}

func (s *CheckoutService) redirectURL(params url.Values) string {
	return s.baseURL + "?" + params.Encode()
}
