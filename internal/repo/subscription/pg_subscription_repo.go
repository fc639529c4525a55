package subscription_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"sealog-webhooks/internal/controller/apperror"
	"sealog-webhooks/internal/domain/subscription"
	"sealog-webhooks/pkg/postgres"
)

// PgUserRepo is the main repository
type PgUserRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgUserRepo(pg *postgres.Postgres) subscription.UserRepo {
	return &PgUserRepo{
		pg:   pg,
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

func (r *PgUserRepo) InTransaction(ctx context.Context, fn func(repo subscription.TxUserRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		txRepo := &repo{db: tx, builder: r.pg.Builder}
		return fn(txRepo)
	})
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) GetUserSubscription(ctx context.Context, userID int64) (subscription.UserSubscription, error) {
	query, args, err := r.builder.
		Select("id", "email", "stripe_customer_id", "stripe_subscription_id",
			"subscription_status", "subscription_start", "subscription_end", "updated_at").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return subscription.UserSubscription{}, fmt.Errorf("build user query: %w", err)
	}

	var (
		out            subscription.UserSubscription
		email          *string
		customerID     *string
		subscriptionID *string
		rawStatus      *string
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&out.UserID, &email, &customerID, &subscriptionID,
		&rawStatus, &out.PeriodStart, &out.PeriodEnd, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscription.UserSubscription{}, apperror.ErrUserNotFound
		}
		return subscription.UserSubscription{}, fmt.Errorf("query user subscription: %w", err)
	}

	if email != nil {
		out.Email = *email
	}
	if customerID != nil {
		out.CustomerID = *customerID
	}
	if subscriptionID != nil {
		out.SubscriptionID = *subscriptionID
	}

	status, err := subscription.NewStatus(deref(rawStatus))
	if err != nil {
		return subscription.UserSubscription{}, fmt.Errorf("invalid status in database: %w", err)
	}
	out.Status = status

	return out, nil
}

func (r *repo) UpdateSubscription(ctx context.Context, update subscription.SubscriptionUpdate) error {
	query, args, err := r.builder.Update("users").
		Set("stripe_subscription_id", update.SubscriptionID).
		Set("subscription_status", update.Status).
		Set("subscription_start", update.PeriodStart).
		Set("subscription_end", update.PeriodEnd).
		Set("updated_at", update.UpdatedAt).
		Where(squirrel.Eq{"id": update.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (r *repo) UpdateSubscriptionStatus(ctx context.Context, userID int64, status subscription.Status) error {
	query, args, err := r.builder.Update("users").
		Set("subscription_status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (r *repo) CreateEvent(ctx context.Context, event subscription.NewEvent) error {
	query, args, err := r.builder.Insert("subscription_events").
		Columns("id", "user_id", "kind", "provider_event_id", "data", "created_at").
		Values(uuid.New().String(), event.UserID, event.Kind, event.ProviderEventID, event.Data, event.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		switch {
		case postgres.IsPgErrorUniqueViolation(err):
			return apperror.ErrEventAlreadyStored
		case postgres.IsPgErrorForeignKeyViolation(err):
			// user_id references a users row that does not exist
			return apperror.ErrUserNotFound
		}
		return fmt.Errorf("create subscription event: %w", err)
	}
	return nil
}

func (r *repo) GetEvents(ctx context.Context, q *subscription.EventQuery) ([]subscription.Event, error) {
	sql, args := r.buildEventsQuery(q)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	return parseEventRows(rows)
}

func (r *repo) buildEventsQuery(q *subscription.EventQuery) (string, []interface{}) {
	order := "created_at DESC"
	if q.SortAsc {
		order = "created_at ASC"
	}

	query := r.builder.
		Select("id", "user_id", "kind", "provider_event_id", "data", "created_at").
		From("subscription_events").
		OrderBy(order)

	if len(q.UserIDs) > 0 {
		query = query.Where(squirrel.Eq{"user_id": q.UserIDs})
	}
	if len(q.Kinds) > 0 {
		query = query.Where(squirrel.Eq{"kind": q.Kinds})
	}
	if q.TimeFrom != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": *q.TimeFrom})
	}
	if q.TimeTo != nil {
		query = query.Where(squirrel.LtOrEq{"created_at": *q.TimeTo})
	}
	if q.Limit > 0 {
		query = query.Limit(uint64(q.Limit))
	}

	sql, args, _ := query.ToSql()
	return sql, args
}

func parseEventRows(rows pgx.Rows) ([]subscription.Event, error) {
	var events []subscription.Event
	for rows.Next() {
		var (
			e       subscription.Event
			rawKind string
		)
		err := rows.Scan(&e.EventID, &e.UserID, &rawKind, &e.ProviderEventID, &e.Data, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}

		kind, err := subscription.NewEventKind(rawKind)
		if err != nil {
			return nil, fmt.Errorf("invalid kind in database: %w", err)
		}
		e.Kind = kind

		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	return events, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
