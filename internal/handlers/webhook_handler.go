package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"quizbank-service/internal/provider"

	"github.com/gin-gonic/gin"
)

// EventApplier reconciles a verified provider event into local state.
type EventApplier interface {
	Apply(ctx context.Context, e *provider.Event) error
}

// WebhookHandler is the trust boundary for provider notifications: nothing
// past ConstructEvent runs unless the signature checks out.
type WebhookHandler struct {
	Reconciler EventApplier
	Secret     string
	Tolerance  time.Duration
}

func NewWebhookHandler(reconciler EventApplier, secret string, tolerance time.Duration) *WebhookHandler {
	return &WebhookHandler{Reconciler: reconciler, Secret: secret, Tolerance: tolerance}
}

func (h *WebhookHandler) HandleEvent(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := provider.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.Secret, h.Tolerance)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook Error: " + err.Error()})
		return
	}

	if err := h.Reconciler.Apply(c.Request.Context(), event); err != nil {
		// Non-2xx tells the provider to redeliver; that retry loop is the
		// only recovery mechanism for a failed reconciliation.
		log.Printf("Failed to reconcile event %s: %v", event.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
