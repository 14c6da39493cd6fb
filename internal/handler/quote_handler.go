package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"certiquote/internal/domain"
	"certiquote/internal/service"
)

// QuoteHandler handles the public quote lifecycle endpoints.
type QuoteHandler struct {
	quoteService    service.QuoteService
	summaryService  service.SummaryService
	deliveryService service.DeliveryService
	fileService     service.FileService
	linkService     service.LinkService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(
	quoteService service.QuoteService,
	summaryService service.SummaryService,
	deliveryService service.DeliveryService,
	fileService service.FileService,
	linkService service.LinkService,
) *QuoteHandler {
	return &QuoteHandler{
		quoteService:    quoteService,
		summaryService:  summaryService,
		deliveryService: deliveryService,
		fileService:     fileService,
		linkService:     linkService,
	}
}

// parseQuoteID parses the :id path parameter. Returns uuid.Nil and writes
// the error response when the id is not a UUID.
func parseQuoteID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		HandleError(c, domain.ErrInvalidQuoteID)
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/v1/quotes
func (h *QuoteHandler) Create(c *gin.Context) {
	var req service.CreateQuoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "client_name and client_email are required")
		return
	}
	quote, err := h.quoteService.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, quote)
}

// Get handles GET /api/v1/quotes/:id
func (h *QuoteHandler) Get(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	quote, err := h.quoteService.Get(c.Request.Context(), quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, quote)
}

// UpdateClient handles PATCH /api/v1/quotes/:id/client
func (h *QuoteHandler) UpdateClient(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	var req service.UpdateClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	quote, err := h.quoteService.UpdateClient(c.Request.Context(), quoteID, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, quote)
}

// Accept handles POST /api/v1/quotes/:id/accept
func (h *QuoteHandler) Accept(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	quote, err := h.quoteService.Accept(c.Request.Context(), quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, quote)
}

// RequestHITL handles POST /api/v1/quotes/:id/hitl
func (h *QuoteHandler) RequestHITL(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	if err := h.quoteService.RequestHITL(c.Request.Context(), quoteID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"quote_id": quoteID, "status": domain.StatusHITL})
}

// UpdateMetadata handles PATCH /api/v1/quotes/:id/metadata
func (h *QuoteHandler) UpdateMetadata(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	var req service.UpdateMetadataInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := h.quoteService.UpdateMetadata(c.Request.Context(), quoteID, &req); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"quote_id": quoteID})
}

// Status handles GET /api/v1/quotes/:id/status
func (h *QuoteHandler) Status(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	view, err := h.quoteService.Status(c.Request.Context(), quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Summary handles GET /api/v1/quotes/:id/summary
func (h *QuoteHandler) Summary(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	summary, err := h.summaryService.GetSummary(c.Request.Context(), quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// DeliveryOptions handles GET /api/v1/quotes/:id/delivery-options
func (h *QuoteHandler) DeliveryOptions(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	options, err := h.deliveryService.ListOptions(c.Request.Context(), quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, options)
}

// ListFiles handles GET /api/v1/quotes/:id/files
func (h *QuoteHandler) ListFiles(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	files, err := h.fileService.ListFiles(c.Request.Context(), quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, files)
}

// RefreshFileLinks handles POST /api/v1/quotes/:id/files/refresh
func (h *QuoteHandler) RefreshFileLinks(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	files, err := h.fileService.RefreshLinks(c.Request.Context(), quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, files)
}

// EmailLink handles POST /api/v1/quotes/:id/email-link
func (h *QuoteHandler) EmailLink(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	if err := h.linkService.SendResumeLink(c.Request.Context(), quoteID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"quote_id": quoteID, "sent": true})
}

// Resume handles GET /api/v1/quotes/resume?token=...
func (h *QuoteHandler) Resume(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "token query parameter is required")
		return
	}
	quote, err := h.linkService.Redeem(c.Request.Context(), token)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, quote)
}
