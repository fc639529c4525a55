package subscription_repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealog-webhooks/internal/controller/apperror"
	"sealog-webhooks/internal/domain/subscription"
)

func newMockRepo(t *testing.T) (*repo, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &repo{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, mock
}

func TestGetUserSubscription(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	selectUser := `SELECT id, email, stripe_customer_id, stripe_subscription_id, subscription_status, subscription_start, subscription_end, updated_at FROM users WHERE id = \$1`

	t.Run("should return user subscription", func(t *testing.T) {
		now := time.Now()
		start := now.Add(-time.Hour)
		end := now.Add(30 * 24 * time.Hour)
		email := "user@example.com"
		customerID := "cus_123"
		subscriptionID := "sub_123"
		status := "active"

		rows := mock.NewRows([]string{
			"id", "email", "stripe_customer_id", "stripe_subscription_id",
			"subscription_status", "subscription_start", "subscription_end", "updated_at",
		}).AddRow(int64(42), &email, &customerID, &subscriptionID, &status, &start, &end, now)

		mock.ExpectQuery(selectUser).WithArgs(int64(42)).WillReturnRows(rows)

		result, err := repo.GetUserSubscription(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), result.UserID)
		assert.Equal(t, "user@example.com", result.Email)
		assert.Equal(t, "cus_123", result.CustomerID)
		assert.Equal(t, "sub_123", result.SubscriptionID)
		assert.Equal(t, subscription.StatusActive, result.Status)
		require.NotNil(t, result.PeriodStart)
		assert.Equal(t, start, *result.PeriodStart)
	})

	t.Run("should treat null subscription columns as none", func(t *testing.T) {
		now := time.Now()
		email := "fresh@example.com"

		rows := mock.NewRows([]string{
			"id", "email", "stripe_customer_id", "stripe_subscription_id",
			"subscription_status", "subscription_start", "subscription_end", "updated_at",
		}).AddRow(int64(7), &email, nil, nil, nil, nil, nil, now)

		mock.ExpectQuery(selectUser).WithArgs(int64(7)).WillReturnRows(rows)

		result, err := repo.GetUserSubscription(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, subscription.StatusNone, result.Status)
		assert.Empty(t, result.SubscriptionID)
		assert.Nil(t, result.PeriodStart)
		assert.Nil(t, result.PeriodEnd)
	})

	t.Run("should return ErrUserNotFound for missing user", func(t *testing.T) {
		mock.ExpectQuery(selectUser).WithArgs(int64(99)).
			WillReturnRows(mock.NewRows([]string{
				"id", "email", "stripe_customer_id", "stripe_subscription_id",
				"subscription_status", "subscription_start", "subscription_end", "updated_at",
			}))

		_, err := repo.GetUserSubscription(ctx, 99)

		assert.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}

func TestUpdateSubscription(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	updateUser := `UPDATE users SET stripe_subscription_id = \$1, subscription_status = \$2, subscription_start = \$3, subscription_end = \$4, updated_at = \$5 WHERE id = \$6`

	t.Run("should update subscription successfully", func(t *testing.T) {
		now := time.Now().UTC()
		update := subscription.SubscriptionUpdate{
			UserID:         42,
			SubscriptionID: "sub_123",
			Status:         subscription.StatusActive,
			PeriodStart:    now.Add(-time.Hour),
			PeriodEnd:      now.Add(30 * 24 * time.Hour),
			UpdatedAt:      now,
		}

		mock.ExpectExec(updateUser).
			WithArgs("sub_123", subscription.StatusActive, update.PeriodStart, update.PeriodEnd, now, int64(42)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateSubscription(ctx, update)

		require.NoError(t, err)
	})

	t.Run("should return ErrUserNotFound when no row matched", func(t *testing.T) {
		mock.ExpectExec(updateUser).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateSubscription(ctx, subscription.SubscriptionUpdate{UserID: 99})

		assert.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}

func TestUpdateSubscriptionStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	updateStatus := `UPDATE users SET subscription_status = \$1, updated_at = \$2 WHERE id = \$3`

	t.Run("should update only the status column", func(t *testing.T) {
		mock.ExpectExec(updateStatus).
			WithArgs(subscription.StatusPaymentFailed, pgxmock.AnyArg(), int64(42)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateSubscriptionStatus(ctx, 42, subscription.StatusPaymentFailed)

		require.NoError(t, err)
	})

	t.Run("should return ErrUserNotFound when no row matched", func(t *testing.T) {
		mock.ExpectExec(updateStatus).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateSubscriptionStatus(ctx, 99, subscription.StatusActive)

		assert.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}

func TestCreateEvent(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	insertEvent := `INSERT INTO subscription_events \(id,user_id,kind,provider_event_id,data,created_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\)`

	event := subscription.NewEvent{
		UserID:          42,
		Kind:            subscription.EventSubscriptionCreated,
		ProviderEventID: "evt_1",
		Data:            json.RawMessage(`{"id":"evt_1"}`),
		CreatedAt:       time.Now().UTC(),
	}

	t.Run("should insert event successfully", func(t *testing.T) {
		mock.ExpectExec(insertEvent).
			WithArgs(pgxmock.AnyArg(), int64(42), subscription.EventSubscriptionCreated,
				"evt_1", event.Data, event.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.CreateEvent(ctx, event)

		require.NoError(t, err)
	})

	t.Run("should map unique violation to ErrEventAlreadyStored", func(t *testing.T) {
		mock.ExpectExec(insertEvent).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "subscription_events_provider_event_id_key"})

		err := repo.CreateEvent(ctx, event)

		assert.ErrorIs(t, err, apperror.ErrEventAlreadyStored)
	})

	t.Run("should map foreign key violation to ErrUserNotFound", func(t *testing.T) {
		mock.ExpectExec(insertEvent).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "subscription_events_user_id_fkey"})

		err := repo.CreateEvent(ctx, event)

		assert.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}

func TestGetEvents(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("should filter events by user and kind", func(t *testing.T) {
		now := time.Now()
		data := json.RawMessage(`{"id":"evt_1"}`)

		rows := mock.NewRows([]string{"id", "user_id", "kind", "provider_event_id", "data", "created_at"}).
			AddRow("row-1", int64(42), "subscription_created", "evt_1", data, now)

		mock.ExpectQuery(`SELECT id, user_id, kind, provider_event_id, data, created_at FROM subscription_events WHERE user_id IN \(\$1\) AND kind IN \(\$2\) ORDER BY created_at DESC LIMIT 10`).
			WithArgs(int64(42), subscription.EventSubscriptionCreated).
			WillReturnRows(rows)

		result, err := repo.GetEvents(ctx, &subscription.EventQuery{
			UserIDs: []int64{42},
			Kinds:   []subscription.EventKind{subscription.EventSubscriptionCreated},
			Limit:   10,
		})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "row-1", result[0].EventID)
		assert.Equal(t, subscription.EventSubscriptionCreated, result[0].Kind)
		assert.Equal(t, "evt_1", result[0].ProviderEventID)
	})

	t.Run("should sort ascending when requested", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, user_id, kind, provider_event_id, data, created_at FROM subscription_events ORDER BY created_at ASC`).
			WillReturnRows(mock.NewRows([]string{"id", "user_id", "kind", "provider_event_id", "data", "created_at"}))

		result, err := repo.GetEvents(ctx, &subscription.EventQuery{SortAsc: true})

		require.NoError(t, err)
		assert.Empty(t, result)
	})
}
