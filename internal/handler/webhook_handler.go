package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"certiquote/internal/domain"
	"certiquote/internal/service"
)

// WebhookHandler handles inbound webhooks from external collaborators.
type WebhookHandler struct {
	quoteService service.QuoteService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(quoteService service.QuoteService) *WebhookHandler {
	return &WebhookHandler{quoteService: quoteService}
}

// Payment handles POST /api/v1/webhooks/payment. The payment provider posts
// a confirmation once a checkout settles; anything other than a paid event
// is acknowledged and ignored.
func (h *WebhookHandler) Payment(c *gin.Context) {
	var req struct {
		QuoteID   string `json:"quote_id" binding:"required"`
		Status    string `json:"status" binding:"required"`
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "quote_id and status are required")
		return
	}
	if req.Status != "paid" && req.Status != "succeeded" {
		RespondOK(c, gin.H{"ignored": true})
		return
	}

	quoteID, err := uuid.Parse(req.QuoteID)
	if err != nil {
		HandleError(c, domain.ErrInvalidQuoteID)
		return
	}
	if err := h.quoteService.MarkPaid(c.Request.Context(), quoteID, req.Reference); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"quote_id": quoteID, "status": domain.StatusPaid})
}
