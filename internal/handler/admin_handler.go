package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"certiquote/internal/service"
	"certiquote/internal/xlsxexport"
)

// AdminHandler handles the key-protected pipeline and back-office endpoints.
type AdminHandler struct {
	ingestService  service.IngestService
	summaryService service.SummaryService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(ingestService service.IngestService, summaryService service.SummaryService) *AdminHandler {
	return &AdminHandler{ingestService: ingestService, summaryService: summaryService}
}

// IngestResults handles POST /api/v1/admin/ingest-results
func (h *AdminHandler) IngestResults(c *gin.Context) {
	var req service.IngestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "quote_id is required")
		return
	}
	outcome, err := h.ingestService.Ingest(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, outcome)
}

// Reprice handles POST /api/v1/admin/quotes/:id/reprice
func (h *AdminHandler) Reprice(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	outcome, err := h.ingestService.Reprice(c.Request.Context(), quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, outcome)
}

// Export handles GET /api/v1/admin/quotes/:id/export
func (h *AdminHandler) Export(c *gin.Context) {
	quoteID, ok := parseQuoteID(c)
	if !ok {
		return
	}
	summary, err := h.summaryService.GetSummary(c.Request.Context(), quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, summary); err != nil {
		HandleError(c, err)
		return
	}
	filename := fmt.Sprintf("quote-%s.xlsx", quoteID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
