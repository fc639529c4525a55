package health

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresChecker reports whether the subscription store answers pings.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

func (c *PostgresChecker) Name() string {
	return "postgres"
}

// Check pings the database and reports pool utilization while at it.
func (c *PostgresChecker) Check(ctx context.Context) Result {
	if err := c.pool.Ping(ctx); err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}

	stat := c.pool.Stat()
	return Result{
		Status:  StatusUp,
		Message: fmt.Sprintf("%d/%d connections in use", stat.AcquiredConns(), stat.TotalConns()),
	}
}
