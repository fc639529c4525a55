package subscription

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"sealog-webhooks/internal/domain/gateway"
	"sealog-webhooks/pkg/logger"
	"sealog-webhooks/pkg/metrics"
)

// Service applies verified provider events to user subscription state and
// serves subscription reads.
type Service struct {
	users    UserRepo
	provider gateway.Provider
	search   EventSearcher // optional, may be nil
	l        logger.Interface
}

func NewService(users UserRepo, provider gateway.Provider, search EventSearcher, l logger.Interface) *Service {
	return &Service{
		users:    users,
		provider: provider,
		search:   search,
		l:        l,
	}
}

// ProcessProviderEvent looks up the subscription at the provider, resolves
// the user, and records the event plus the resulting user update in one
// transaction. Replays surface as apperror.ErrEventAlreadyStored.
func (s *Service) ProcessProviderEvent(ctx context.Context, ev ProviderEvent) error {
	if ev.SubscriptionID == "" {
		s.l.Info("Webhook without subscription reference ignored: provider_event_id=%s kind=%s",
			ev.ProviderEventID, ev.Kind)
		metrics.WebhookEventsTotal.WithLabelValues(string(ev.Kind), metrics.WebhookOutcomeSkipped).Inc()
		return nil
	}

	sub, err := s.provider.GetSubscription(ctx, ev.SubscriptionID)
	if err != nil {
		return fmt.Errorf("retrieve subscription %s: %w", ev.SubscriptionID, err)
	}

	userID := ev.UserID
	if userID == 0 {
		userID = userIDFromMetadata(sub.Metadata)
	}
	if userID == 0 {
		s.l.Warn("Webhook subscription has no user_id metadata, skipping: provider_event_id=%s subscription_id=%s",
			ev.ProviderEventID, ev.SubscriptionID)
		metrics.WebhookEventsTotal.WithLabelValues(string(ev.Kind), metrics.WebhookOutcomeSkipped).Inc()
		return nil
	}

	newStatus, statusOnly := statusForEvent(ev.Kind, sub.CancelAtPeriodEnd)

	stored := NewEvent{
		UserID:          userID,
		Kind:            ev.Kind,
		ProviderEventID: ev.ProviderEventID,
		Data:            ev.Payload,
		CreatedAt:       time.Now().UTC(),
	}

	err = s.users.InTransaction(ctx, func(tx TxUserRepo) error {
		if err := tx.CreateEvent(ctx, stored); err != nil {
			return err
		}

		if statusOnly {
			return tx.UpdateSubscriptionStatus(ctx, userID, newStatus)
		}

		return tx.UpdateSubscription(ctx, SubscriptionUpdate{
			UserID:         userID,
			SubscriptionID: sub.ID,
			Status:         newStatus,
			PeriodStart:    sub.CurrentPeriodStart,
			PeriodEnd:      sub.CurrentPeriodEnd,
			UpdatedAt:      time.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}

	s.mirrorEvent(ctx, stored)

	s.l.Info("Subscription webhook processed: user_id=%d kind=%s status=%s",
		userID, ev.Kind, newStatus)
	return nil
}

// mirrorEvent indexes the stored event into the search sink, best effort.
func (s *Service) mirrorEvent(ctx context.Context, stored NewEvent) {
	if s.search == nil {
		return
	}
	event := Event{EventID: stored.ProviderEventID, NewEvent: stored}
	if err := s.search.IndexEvent(ctx, event); err != nil {
		s.l.Error("Failed to index subscription event: provider_event_id=%s error=%v",
			stored.ProviderEventID, err)
	}
}

func (s *Service) GetUserSubscription(ctx context.Context, userID int64) (UserSubscription, error) {
	res, err := s.users.GetUserSubscription(ctx, userID)
	if err != nil {
		return UserSubscription{}, fmt.Errorf("get user subscription: %w", err)
	}
	return res, nil
}

func (s *Service) GetEvents(ctx context.Context, query EventQuery) ([]Event, error) {
	if s.search != nil {
		events, err := s.search.SearchEvents(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search events: %w", err)
		}
		return events, nil
	}

	events, err := s.users.GetEvents(ctx, &query)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	return events, nil
}

// statusForEvent maps an event kind to the status written to the user row.
// The second result marks kinds where only subscription_status is updated.
func statusForEvent(kind EventKind, cancelAtPeriodEnd bool) (Status, bool) {
	switch kind {
	case EventSubscriptionCreated, EventPaymentSucceeded:
		return StatusActive, false
	case EventSubscriptionUpdated:
		if cancelAtPeriodEnd {
			return StatusCancelled, false
		}
		return StatusActive, false
	case EventSubscriptionDeleted:
		return StatusCancelled, false
	case EventPaymentFailed:
		return StatusPaymentFailed, true
	default:
		return StatusNone, true
	}
}

func userIDFromMetadata(meta map[string]string) int64 {
	raw, ok := meta["user_id"]
	if !ok {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
