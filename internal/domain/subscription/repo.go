package subscription

import "context"

//go:generate mockgen -source repo.go -destination mock_repo.go -package subscription

type TxUserRepo interface {
	GetUserSubscription(ctx context.Context, userID int64) (UserSubscription, error)
	GetEvents(ctx context.Context, query *EventQuery) ([]Event, error)

	UpdateSubscription(ctx context.Context, update SubscriptionUpdate) error
	UpdateSubscriptionStatus(ctx context.Context, userID int64, status Status) error
	CreateEvent(ctx context.Context, event NewEvent) error
}

type UserRepo interface {
	TxUserRepo
	InTransaction(ctx context.Context, fn func(repo TxUserRepo) error) error
}
