package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"certiquote/internal/domain"
	"certiquote/internal/handler"
	"certiquote/internal/pricing"
	"certiquote/internal/service"
	"certiquote/mocks"
)

func TestAdminHandler_IngestResults_Success(t *testing.T) {
	ingestSvc := new(mocks.MockIngestService)
	h := handler.NewAdminHandler(ingestSvc, nil)
	quoteID := uuid.New()

	ingestSvc.On("Ingest", mock.Anything, mock.MatchedBy(func(in *service.IngestInput) bool {
		return in.QuoteID == quoteID.String() && in.PagesCSV != ""
	})).Return(&service.IngestOutcome{
		QuoteID: quoteID,
		Status:  domain.StatusReady,
		Documents: []pricing.LineItem{
			{DocumentLabel: "passport.pdf", BillablePages: 2, UnitRate: 50, AmountPages: 100, CertificationAmount: 10, LineTotal: 110},
		},
		Subtotal: 110,
		Tax:      5.5,
		Total:    115.5,
		Currency: "CAD",
	}, nil)

	body, _ := json.Marshal(map[string]string{
		"quote_id":  quoteID.String(),
		"pages_csv": "filename,billable_pages\npassport.pdf,2\n",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/ingest-results", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.IngestResults(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    service.IngestOutcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, domain.StatusReady, resp.Data.Status)
	require.Len(t, resp.Data.Documents, 1)
	assert.Equal(t, "passport.pdf", resp.Data.Documents[0].DocumentLabel)
	assert.Equal(t, 110.0, resp.Data.Documents[0].LineTotal)
	ingestSvc.AssertExpectations(t)
}

func TestAdminHandler_IngestResults_MissingQuoteID(t *testing.T) {
	ingestSvc := new(mocks.MockIngestService)
	h := handler.NewAdminHandler(ingestSvc, nil)

	body, _ := json.Marshal(map[string]string{"pages_csv": "filename\na.pdf\n"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/ingest-results", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.IngestResults(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	ingestSvc.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
}

func TestAdminHandler_IngestResults_MissingData(t *testing.T) {
	ingestSvc := new(mocks.MockIngestService)
	h := handler.NewAdminHandler(ingestSvc, nil)
	quoteID := uuid.New()

	ingestSvc.On("Ingest", mock.Anything, mock.Anything).Return(nil, domain.ErrMissingData)

	body, _ := json.Marshal(map[string]string{"quote_id": quoteID.String()})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/ingest-results", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.IngestResults(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MISSING_DATA", resp.Error.Code)
}

func TestAdminHandler_Reprice_Success(t *testing.T) {
	ingestSvc := new(mocks.MockIngestService)
	h := handler.NewAdminHandler(ingestSvc, nil)
	quoteID := uuid.New()

	ingestSvc.On("Reprice", mock.Anything, quoteID).Return(&service.IngestOutcome{
		QuoteID:  quoteID,
		Status:   domain.StatusReady,
		Subtotal: 90,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/admin/quotes/"+quoteID.String()+"/reprice", nil)
	c.Params = gin.Params{{Key: "id", Value: quoteID.String()}}

	h.Reprice(c)

	assert.Equal(t, http.StatusOK, w.Code)
	ingestSvc.AssertExpectations(t)
}

func TestAdminHandler_Export_Success(t *testing.T) {
	summarySvc := new(mocks.MockSummaryService)
	h := handler.NewAdminHandler(nil, summarySvc)
	quoteID := uuid.New()

	summarySvc.On("GetSummary", mock.Anything, quoteID).Return(&service.QuoteSummary{
		QuoteID: quoteID,
		Status:  domain.StatusReady,
		LineItems: []domain.SubOrder{
			{DocumentLabel: "passport", BillablePages: 2, UnitRate: 50, AmountPages: 100, CertificationAmount: 10, LineTotal: 110},
		},
		Subtotal: 110,
		Tax:      5.5,
		Total:    115.5,
		Currency: "CAD",
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/quotes/"+quoteID.String()+"/export", nil)
	c.Params = gin.Params{{Key: "id", Value: quoteID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "quote-"+quoteID.String()+".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestAdminHandler_Export_NotReady(t *testing.T) {
	summarySvc := new(mocks.MockSummaryService)
	h := handler.NewAdminHandler(nil, summarySvc)
	quoteID := uuid.New()

	summarySvc.On("GetSummary", mock.Anything, quoteID).
		Return(nil, &domain.NotReadyError{Status: domain.StatusPending})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/quotes/"+quoteID.String()+"/export", nil)
	c.Params = gin.Params{{Key: "id", Value: quoteID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
