//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sealog-webhooks/internal/app"
	controllerhttp "sealog-webhooks/internal/controller/http"
	"sealog-webhooks/internal/controller/http/handlers"
	"sealog-webhooks/internal/controller/message"
	"sealog-webhooks/internal/domain/billing"
	"sealog-webhooks/internal/domain/gateway"
	"sealog-webhooks/internal/domain/subscription"
	extkafka "sealog-webhooks/internal/external/kafka"
	stripeext "sealog-webhooks/internal/external/stripe"
	"sealog-webhooks/internal/messaging"
	subscription_repo "sealog-webhooks/internal/repo/subscription"
	"sealog-webhooks/internal/testinfra"
	"sealog-webhooks/internal/webhook"
	"sealog-webhooks/pkg/health"
	"sealog-webhooks/pkg/logger"
)

const webhookSecret = "whsec_integration_secret"

var suite *testinfra.TestSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	suite, err = testinfra.NewTestSuite(ctx, testinfra.SuiteOptions{
		WithKafka:    true,
		WithWiremock: true,
		MappingsPath: "testdata/stripe-mappings",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test suite: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	suite.Cleanup(ctx)
	os.Exit(code)
}

func newStripeClient() *stripeext.Client {
	return stripeext.New(stripeext.Config{
		SecretKey: "sk_test_integration",
		BaseURL:   suite.Wiremock.BaseURL,
		Timeout:   10 * time.Second,
	})
}

func newService(t *testing.T) (*subscription.Service, gateway.Provider) {
	t.Helper()

	l := logger.New("error")
	userRepo := subscription_repo.NewPgUserRepo(suite.Postgres.Pool)
	stripeClient := newStripeClient()

	return subscription.NewService(userRepo, stripeClient, nil, l), stripeClient
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	l := logger.New("error")
	service, stripeClient := newService(t)
	checkoutService := billing.NewCheckoutService(stripeClient, "https://app.example.com")
	verifier := stripeext.NewVerifier(webhookSecret)

	webhookHandler := handlers.NewWebhookHandler(verifier, webhook.NewSyncProcessor(service), l)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	subscriptionHandler := handlers.NewSubscriptionHandler(service)

	router := controllerhttp.NewRouter(webhookHandler, checkoutHandler, subscriptionHandler,
		health.NewRegistry(health.NewPostgresChecker(suite.Postgres.Pool.Pool)))

	engine := app.NewGinEngine(l)
	router.SetUp(engine)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return server
}

func resetDatabase(t *testing.T) int64 {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, suite.Postgres.Truncate(ctx))

	userID, err := suite.Postgres.SeedUser(ctx, "integration@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), userID, "wiremock subscriptions map to user 1")

	return userID
}

func signBody(body []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func stripeEvent(eventID, eventType, object string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": %q,
		"created": %d,
		"data": {"object": %s}
	}`, eventID, eventType, time.Now().Unix(), object))
}

func postWebhook(t *testing.T, serverURL string, body []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, serverURL+"/webhook/stripe", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", signBody(body))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func getUserRow(t *testing.T, userID int64) subscription.UserSubscription {
	t.Helper()

	var (
		out            subscription.UserSubscription
		subscriptionID *string
		rawStatus      *string
	)
	err := suite.Postgres.Pool.Pool.QueryRow(context.Background(),
		`SELECT id, stripe_subscription_id, subscription_status, subscription_start, subscription_end, updated_at
		 FROM users WHERE id = $1`, userID).
		Scan(&out.UserID, &subscriptionID, &rawStatus, &out.PeriodStart, &out.PeriodEnd, &out.UpdatedAt)
	require.NoError(t, err)

	if subscriptionID != nil {
		out.SubscriptionID = *subscriptionID
	}
	status, err := subscription.NewStatus(derefString(rawStatus))
	require.NoError(t, err)
	out.Status = status

	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TestWebhookFlow(t *testing.T) {
	server := setupTestServer(t)
	userID := resetDatabase(t)

	subObject := `{"id": "sub_int_1", "status": "active", "metadata": {"user_id": "1"}}`

	t.Run("subscription created activates the user", func(t *testing.T) {
		resp := postWebhook(t, server.URL, stripeEvent("evt_int_1", "customer.subscription.created", subObject))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		row := getUserRow(t, userID)
		assert.Equal(t, "sub_int_1", row.SubscriptionID)
		assert.Equal(t, subscription.StatusActive, row.Status)
		require.NotNil(t, row.PeriodStart)
		assert.Equal(t, time.Unix(1756000000, 0).UTC(), row.PeriodStart.UTC())
	})

	t.Run("duplicate delivery is acknowledged without reprocessing", func(t *testing.T) {
		resp := postWebhook(t, server.URL, stripeEvent("evt_int_1", "customer.subscription.created", subObject))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Duplicate webhook received", body["status"])

		var count int
		require.NoError(t, suite.Postgres.Pool.Pool.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM subscription_events WHERE provider_event_id = 'evt_int_1'").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("failed payment flips only the status", func(t *testing.T) {
		resp := postWebhook(t, server.URL, stripeEvent("evt_int_2", "invoice.payment_failed",
			`{"id": "in_int_1", "subscription": "sub_int_1"}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		row := getUserRow(t, userID)
		assert.Equal(t, subscription.StatusPaymentFailed, row.Status)
		assert.Equal(t, "sub_int_1", row.SubscriptionID)
	})

	t.Run("events for unknown users return 404 and store nothing", func(t *testing.T) {
		resp := postWebhook(t, server.URL, stripeEvent("evt_int_ghost", "customer.subscription.created",
			`{"id": "sub_int_ghost", "status": "active", "metadata": {"user_id": "9999"}}`))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var count int
		require.NoError(t, suite.Postgres.Pool.Pool.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM subscription_events WHERE provider_event_id = 'evt_int_ghost'").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("unhandled event types are acknowledged", func(t *testing.T) {
		resp := postWebhook(t, server.URL, stripeEvent("evt_int_3", "charge.succeeded", `{"id": "ch_1"}`))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int
		require.NoError(t, suite.Postgres.Pool.Pool.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM subscription_events WHERE provider_event_id = 'evt_int_3'").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("forged signature is rejected", func(t *testing.T) {
		body := stripeEvent("evt_int_4", "customer.subscription.created", subObject)
		req, err := http.NewRequest(http.MethodPost, server.URL+"/webhook/stripe", bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSubscriptionAPI(t *testing.T) {
	server := setupTestServer(t)
	userID := resetDatabase(t)

	resp := postWebhook(t, server.URL, stripeEvent("evt_api_1", "customer.subscription.created",
		`{"id": "sub_int_1", "status": "active", "metadata": {"user_id": "1"}}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("returns the user subscription", func(t *testing.T) {
		res, err := http.Get(fmt.Sprintf("%s/subscriptions/%d", server.URL, userID))
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)

		var body subscription.UserSubscription
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, userID, body.UserID)
		assert.Equal(t, subscription.StatusActive, body.Status)
		assert.Equal(t, "sub_int_1", body.SubscriptionID)
	})

	t.Run("returns 404 for unknown users", func(t *testing.T) {
		res, err := http.Get(server.URL + "/subscriptions/9999")
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("filters stored events", func(t *testing.T) {
		params, err := query.Values(subscription.EventQuery{
			UserIDs: []int64{userID},
			Kinds:   []subscription.EventKind{subscription.EventSubscriptionCreated},
			Limit:   10,
		})
		require.NoError(t, err)

		res, err := http.Get(server.URL + "/subscriptions/events?" + params.Encode())
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)

		var events []subscription.Event
		require.NoError(t, json.NewDecoder(res.Body).Decode(&events))
		require.Len(t, events, 1)
		assert.Equal(t, "evt_api_1", events[0].ProviderEventID)
		assert.Equal(t, subscription.EventSubscriptionCreated, events[0].Kind)
	})

	t.Run("health endpoint reports ready", func(t *testing.T) {
		res, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode)
	})
}

func TestCheckoutAPI(t *testing.T) {
	server := setupTestServer(t)
	resetDatabase(t)

	t.Run("returns plan details", func(t *testing.T) {
		res, err := http.Get(server.URL + "/plans/price_int_1")
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)

		var plan gateway.Plan
		require.NoError(t, json.NewDecoder(res.Body).Decode(&plan))
		assert.Equal(t, "price_int_1", plan.PriceID)
		assert.Equal(t, "Pro Plan", plan.ProductName)
		assert.EqualValues(t, 1500, plan.UnitAmount)
		assert.True(t, plan.Recurring)
	})

	t.Run("creates a checkout session", func(t *testing.T) {
		body, err := json.Marshal(billing.CreateSessionRequest{
			UserID:    1,
			UserEmail: "integration@example.com",
			PriceID:   "price_int_1",
		})
		require.NoError(t, err)

		res, err := http.Post(server.URL+"/checkout/sessions", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusCreated, res.StatusCode)

		var session gateway.CheckoutSession
		require.NoError(t, json.NewDecoder(res.Body).Decode(&session))
		assert.Equal(t, "cs_test_int_1", session.ID)
		assert.NotEmpty(t, session.URL)
	})
}

func TestAsyncWebhookProcessing(t *testing.T) {
	userID := resetDatabase(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := logger.New("error")
	service, _ := newService(t)

	publisher := extkafka.NewPublisher(l, suite.Kafka.Brokers, suite.Kafka.SubscriptionsTopic)
	t.Cleanup(func() { publisher.Close() })

	processor := webhook.NewAsyncProcessor(publisher)

	dlqPub := extkafka.NewDLQPublisher(l, suite.Kafka.Brokers, suite.Kafka.DLQTopic)
	t.Cleanup(func() { dlqPub.Close() })

	controller := message.NewSubscriptionMessageController(l, service)
	handler := messaging.WithDLQ(
		messaging.WithRetry(controller.HandleMessage, messaging.DefaultRetryConfig()),
		dlqPub,
	)
	consumer := extkafka.NewConsumer(l, suite.Kafka.Brokers,
		suite.Kafka.SubscriptionsTopic, suite.Kafka.SubscriptionsGroup)
	runner := messaging.NewRunner(l, []messaging.Worker{consumer}, handler)

	go func() {
		_ = runner.Start(ctx)
	}()

	event := subscription.ProviderEvent{
		ProviderEventID: "evt_async_1",
		Kind:            subscription.EventSubscriptionCreated,
		SubscriptionID:  "sub_int_1",
		UserID:          userID,
		Payload:         json.RawMessage(`{"id": "sub_int_1"}`),
		ReceivedAt:      time.Now().UTC(),
	}
	require.NoError(t, processor.ProcessSubscriptionEvent(ctx, event))

	require.Eventually(t, func() bool {
		row := getUserRow(t, userID)
		return row.Status == subscription.StatusActive && row.SubscriptionID == "sub_int_1"
	}, 60*time.Second, 500*time.Millisecond, "queued webhook should eventually update the user")
}
