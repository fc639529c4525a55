package subscription

import (
	"errors"
	"slices"
	"time"
)

// UserSubscription is the subscription state of a single user row.
type UserSubscription struct {
	UserID         int64      `json:"user_id"`
	Email          string     `json:"email,omitempty"`
	CustomerID     string     `json:"stripe_customer_id,omitempty"`
	SubscriptionID string     `json:"stripe_subscription_id,omitempty"`
	Status         Status     `json:"subscription_status"`
	PeriodStart    *time.Time `json:"subscription_start,omitempty"`
	PeriodEnd      *time.Time `json:"subscription_end,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type Status string

const (
	// StatusNone marks users that never had a subscription.
	StatusNone          Status = "none"
	StatusActive        Status = "active"
	StatusCancelled     Status = "cancelled"
	StatusPaymentFailed Status = "payment_failed"
)

var AvailableStatuses = []Status{StatusNone, StatusActive, StatusCancelled, StatusPaymentFailed}

func NewStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusNone, nil
	}
	if slices.Contains(AvailableStatuses, Status(raw)) {
		return Status(raw), nil
	}
	return "", errors.New("invalid subscription status")
}

// SubscriptionUpdate carries a full subscription state write for a user.
type SubscriptionUpdate struct {
	UserID         int64
	SubscriptionID string
	Status         Status
	PeriodStart    time.Time
	PeriodEnd      time.Time
	UpdatedAt      time.Time
}
