package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"sealog-webhooks/internal/controller/apperror"
	"sealog-webhooks/internal/domain/subscription"
	"sealog-webhooks/internal/webhook"
	"sealog-webhooks/pkg/logger"
	"sealog-webhooks/pkg/metrics"
)

// maxWebhookBody bounds the webhook payload, Stripe events fit well below it.
const maxWebhookBody = int64(65536)

// EventVerifier checks the webhook signature and maps the payload to a
// provider event. The second result is false for unhandled event types.
type EventVerifier interface {
	VerifyAndParse(payload []byte, signature string) (subscription.ProviderEvent, bool, error)
}

type WebhookHandler struct {
	verifier  EventVerifier
	processor webhook.Processor
	logger    *logger.Logger
}

func NewWebhookHandler(verifier EventVerifier, processor webhook.Processor, l *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier:  verifier,
		processor: processor,
		logger:    l,
	}
}

// HandleStripe verifies and processes a Stripe webhook delivery. Duplicate
// deliveries and unhandled event types are acknowledged with 200 so Stripe
// stops retrying them.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", metrics.WebhookOutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read request body"})
		return
	}

	event, handled, err := h.verifier.VerifyAndParse(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("Webhook rejected: error=%v", err)
		metrics.WebhookEventsTotal.WithLabelValues("unknown", metrics.WebhookOutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid signature"})
		return
	}
	if !handled {
		metrics.WebhookEventsTotal.WithLabelValues("unhandled", metrics.WebhookOutcomeIgnored).Inc()
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := h.processor.ProcessSubscriptionEvent(c, event); err != nil {
		switch {
		case errors.Is(err, apperror.ErrEventAlreadyStored):
			metrics.WebhookEventsTotal.WithLabelValues(string(event.Kind), metrics.WebhookOutcomeDuplicate).Inc()
			c.JSON(http.StatusOK, gin.H{"status": "Duplicate webhook received"})
		case errors.Is(err, apperror.ErrUserNotFound):
			metrics.WebhookEventsTotal.WithLabelValues(string(event.Kind), metrics.WebhookOutcomeFailed).Inc()
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		default:
			h.logger.Error("Webhook processing failed: provider_event_id=%s error=%v",
				event.ProviderEventID, err)
			metrics.WebhookEventsTotal.WithLabelValues(string(event.Kind), metrics.WebhookOutcomeFailed).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Webhook processing failed"})
		}
		return
	}

	metrics.WebhookEventsTotal.WithLabelValues(string(event.Kind), metrics.WebhookOutcomeProcessed).Inc()
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
