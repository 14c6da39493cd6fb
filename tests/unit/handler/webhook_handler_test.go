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
	"certiquote/mocks"
)

func paymentContext(w *httptest.ResponseRecorder, payload map[string]string) *gin.Context {
	body, _ := json.Marshal(payload)
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestWebhookHandler_Payment_Paid(t *testing.T) {
	quoteSvc := new(mocks.MockQuoteService)
	h := handler.NewWebhookHandler(quoteSvc)
	quoteID := uuid.New()

	quoteSvc.On("MarkPaid", mock.Anything, quoteID, "pay_123").Return(nil)

	w := httptest.NewRecorder()
	c := paymentContext(w, map[string]string{
		"quote_id":  quoteID.String(),
		"status":    "paid",
		"reference": "pay_123",
	})

	h.Payment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	quoteSvc.AssertExpectations(t)
}

func TestWebhookHandler_Payment_SucceededAlias(t *testing.T) {
	quoteSvc := new(mocks.MockQuoteService)
	h := handler.NewWebhookHandler(quoteSvc)
	quoteID := uuid.New()

	quoteSvc.On("MarkPaid", mock.Anything, quoteID, "").Return(nil)

	w := httptest.NewRecorder()
	c := paymentContext(w, map[string]string{
		"quote_id": quoteID.String(),
		"status":   "succeeded",
	})

	h.Payment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	quoteSvc.AssertExpectations(t)
}

func TestWebhookHandler_Payment_IgnoresOtherEvents(t *testing.T) {
	quoteSvc := new(mocks.MockQuoteService)
	h := handler.NewWebhookHandler(quoteSvc)

	w := httptest.NewRecorder()
	c := paymentContext(w, map[string]string{
		"quote_id": uuid.New().String(),
		"status":   "refund_pending",
	})

	h.Payment(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp.Data["ignored"])
	quoteSvc.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookHandler_Payment_MissingFields(t *testing.T) {
	quoteSvc := new(mocks.MockQuoteService)
	h := handler.NewWebhookHandler(quoteSvc)

	w := httptest.NewRecorder()
	c := paymentContext(w, map[string]string{"quote_id": uuid.New().String()})

	h.Payment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookHandler_Payment_InvalidQuoteID(t *testing.T) {
	quoteSvc := new(mocks.MockQuoteService)
	h := handler.NewWebhookHandler(quoteSvc)

	w := httptest.NewRecorder()
	c := paymentContext(w, map[string]string{
		"quote_id": "not-a-uuid",
		"status":   "paid",
	})

	h.Payment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_QUOTE_ID", resp.Error.Code)
}

func TestWebhookHandler_Payment_DoublePayment(t *testing.T) {
	quoteSvc := new(mocks.MockQuoteService)
	h := handler.NewWebhookHandler(quoteSvc)
	quoteID := uuid.New()

	quoteSvc.On("MarkPaid", mock.Anything, quoteID, "pay_123").Return(domain.ErrInvalidTransition)

	w := httptest.NewRecorder()
	c := paymentContext(w, map[string]string{
		"quote_id":  quoteID.String(),
		"status":    "paid",
		"reference": "pay_123",
	})

	h.Payment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
