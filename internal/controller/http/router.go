package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sealog-webhooks/internal/controller/http/handlers"
	"sealog-webhooks/pkg/health"
	"sealog-webhooks/pkg/metrics"
)

type Router struct {
	webhook        *handlers.WebhookHandler
	checkout       *handlers.CheckoutHandler
	subscription   *handlers.SubscriptionHandler
	healthRegistry *health.Registry
}

func NewRouter(
	webhook *handlers.WebhookHandler,
	checkout *handlers.CheckoutHandler,
	subscription *handlers.SubscriptionHandler,
	healthRegistry *health.Registry,
) *Router {
	return &Router{
		webhook:        webhook,
		checkout:       checkout,
		subscription:   subscription,
		healthRegistry: healthRegistry,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "Webhook service running",
			"service": "Sea Log Stripe Webhooks",
		})
	})

	// Health checks (Kubernetes-style), /health kept for the uptime monitor
	engine.GET("/health", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	// Prometheus metrics
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	engine.POST("/webhook/stripe", r.webhook.HandleStripe)

	engine.POST("/checkout/sessions", r.checkout.CreateSession)
	engine.GET("/plans/:price_id", r.checkout.GetPlan)

	engine.GET("/subscriptions/events", r.subscription.GetEvents)
	engine.GET("/subscriptions/:user_id", r.subscription.Get)
}
