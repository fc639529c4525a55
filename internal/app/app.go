package app

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sealog-webhooks/config"
	controllerhttp "sealog-webhooks/internal/controller/http"
	"sealog-webhooks/internal/controller/http/handlers"
	"sealog-webhooks/internal/domain/billing"
	"sealog-webhooks/internal/domain/subscription"
	"sealog-webhooks/internal/external/kafka"
	"sealog-webhooks/internal/external/opensearch"
	stripeext "sealog-webhooks/internal/external/stripe"
	subscription_repo "sealog-webhooks/internal/repo/subscription"
	"sealog-webhooks/internal/webhook"
	"sealog-webhooks/pkg/health"
	"sealog-webhooks/pkg/logger"
	"sealog-webhooks/pkg/postgres"
)

//go:embed migrations/*.sql
var MIGRATION_FS embed.FS

func Run(cfg config.Config) {
	l := logger.New(cfg.LogLevel)

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine := NewGinEngine(l)

	pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pool.Close()

	userRepo := subscription_repo.NewPgUserRepo(pool)

	stripeClient := stripeext.New(stripeext.Config{
		SecretKey: cfg.StripeSecretKey,
		BaseURL:   cfg.StripeAPIBaseURL,
		Timeout:   cfg.StripeClientTimeout,
	})
	verifier := stripeext.NewVerifier(cfg.StripeWebhookSecret)

	var eventSearch subscription.EventSearcher
	if len(cfg.OpensearchURLs) > 0 {
		sink, err := opensearch.NewEventSink(ctx, cfg.OpensearchURLs, cfg.OpensearchIndexEvents)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - opensearch.NewEventSink: %w", err))
		}
		eventSearch = sink
	}

	// Services
	subscriptionService := subscription.NewService(userRepo, stripeClient, eventSearch, l)
	checkoutService := billing.NewCheckoutService(stripeClient, cfg.BaseURL)

	// Webhook processor: inline in sync mode, queued in kafka mode
	var processor webhook.Processor = webhook.NewSyncProcessor(subscriptionService)
	healthCheckers := []health.Checker{health.NewPostgresChecker(pool.Pool)}
	if cfg.WebhookMode == "kafka" {
		publisher := kafka.NewPublisher(l, cfg.KafkaBrokers, cfg.KafkaSubscriptionsTopic)
		defer publisher.Close()

		processor = webhook.NewAsyncProcessor(publisher)
		healthCheckers = append(healthCheckers, health.NewKafkaChecker(cfg.KafkaBrokers))
	}

	// Handlers
	webhookHandler := handlers.NewWebhookHandler(verifier, processor, l)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	router := controllerhttp.NewRouter(
		webhookHandler,
		checkoutHandler,
		subscriptionHandler,
		health.NewRegistry(healthCheckers...),
	)
	router.SetUp(engine)

	// Apply migrations
	err = ApplyMigrations(cfg.PgURL, MIGRATION_FS)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - ApplyMigrations: %w", err))
	}

	// Start Kafka consumers if in kafka mode
	if cfg.WebhookMode == "kafka" {
		l.Info("Webhook mode: kafka - starting Kafka consumer")
		StartWorkers(ctx, l, cfg, subscriptionService)
	}

	// Start HTTP server in a goroutine
	go func() {
		l.Info("Starting HTTP server: port=%d", cfg.Port)
		if err := engine.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			l.Error("HTTP server error: error=%v", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	l.Info("Shutting down gracefully...")
}
