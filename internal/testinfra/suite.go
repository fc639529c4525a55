//go:build integration
// +build integration

package testinfra

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// TestSuite is the container set backing the integration tests: Postgres
// as the subscription store, Kafka for the async webhook mode, and
// wiremock standing in for the Stripe API.
type TestSuite struct {
	Postgres *PostgresContainer
	Kafka    *KafkaContainer
	Wiremock *WiremockContainer
}

type SuiteOptions struct {
	WithKafka    bool
	WithWiremock bool
	MappingsPath string // Stripe response stubs served by wiremock
}

// NewTestSuite starts the requested containers in parallel. Postgres is
// always started since every test needs the store.
func NewTestSuite(ctx context.Context, opts SuiteOptions) (*TestSuite, error) {
	suite := &TestSuite{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pg, err := NewPostgres(gctx)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		suite.Postgres = pg
		return nil
	})
	if opts.WithKafka {
		g.Go(func() error {
			k, err := NewKafka(gctx)
			if err != nil {
				return fmt.Errorf("kafka: %w", err)
			}
			suite.Kafka = k
			return nil
		})
	}
	if opts.WithWiremock {
		g.Go(func() error {
			w, err := NewWiremock(gctx, opts.MappingsPath)
			if err != nil {
				return fmt.Errorf("wiremock: %w", err)
			}
			suite.Wiremock = w
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// the group context is already cancelled, clean up what did start
		suite.Cleanup(context.Background())
		return nil, fmt.Errorf("failed to start containers: %w", err)
	}

	return suite, nil
}

func (s *TestSuite) Cleanup(ctx context.Context) {
	if s.Wiremock != nil {
		s.Wiremock.Cleanup(ctx)
	}
	if s.Kafka != nil {
		s.Kafka.Cleanup(ctx)
	}
	if s.Postgres != nil {
		s.Postgres.Cleanup(ctx)
	}
}
