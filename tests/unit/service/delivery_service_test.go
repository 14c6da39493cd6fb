package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"certiquote/internal/domain"
	"certiquote/internal/service"
	"certiquote/mocks"
)

type deliveryFixture struct {
	quoteRepo  *mocks.MockQuoteRepo
	resultRepo *mocks.MockResultRepo
	refRepo    *mocks.MockReferenceRepo
	svc        service.DeliveryService
}

func newDeliveryFixture() *deliveryFixture {
	f := &deliveryFixture{
		quoteRepo:  new(mocks.MockQuoteRepo),
		resultRepo: new(mocks.MockResultRepo),
		refRepo:    new(mocks.MockReferenceRepo),
	}
	f.svc = service.NewDeliveryService(f.quoteRepo, f.resultRepo, f.refRepo)
	return f
}

func standardOption() domain.DeliveryOption {
	return domain.DeliveryOption{
		ID:               1,
		Name:             "Standard",
		FeeType:          domain.FeeTypeFlat,
		FeeAmount:        0,
		BaseBusinessDays: 3,
		AddlBusinessDays: 1,
		Active:           true,
	}
}

func TestListOptions_PercentFeeAppliesToSubtotal(t *testing.T) {
	f := newDeliveryFixture()
	quoteID := uuid.New()

	f.quoteRepo.On("GetByID", mock.Anything, quoteID).
		Return(&domain.QuoteSubmission{QuoteID: quoteID, Status: domain.StatusReady}, nil)
	f.resultRepo.On("GetResult", mock.Anything, quoteID).
		Return(&domain.QuoteResult{QuoteID: quoteID, Subtotal: 110}, nil)
	f.resultRepo.On("ListSubOrders", mock.Anything, quoteID).Return([]domain.SubOrder{
		{DocumentLabel: "passport", BillablePages: 2},
	}, nil)
	f.refRepo.On("ListDeliveryOptions", mock.Anything).Return([]domain.DeliveryOption{
		{ID: 2, Name: "Rush", FeeType: domain.FeeTypePercent, FeeAmount: 25, BaseBusinessDays: 1, Active: true},
	}, nil)

	out, err := f.svc.ListOptions(context.Background(), quoteID)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 27.5, out[0].Fee)
	assert.Equal(t, 1, out[0].BusinessDays)
}

func TestListOptions_FlatFeePassesThrough(t *testing.T) {
	f := newDeliveryFixture()
	quoteID := uuid.New()

	f.quoteRepo.On("GetByID", mock.Anything, quoteID).
		Return(&domain.QuoteSubmission{QuoteID: quoteID, Status: domain.StatusReady}, nil)
	f.resultRepo.On("GetResult", mock.Anything, quoteID).
		Return(&domain.QuoteResult{QuoteID: quoteID, Subtotal: 500}, nil)
	f.resultRepo.On("ListSubOrders", mock.Anything, quoteID).Return(nil, nil)
	f.refRepo.On("ListDeliveryOptions", mock.Anything).Return([]domain.DeliveryOption{
		{ID: 3, Name: "Courier", FeeType: domain.FeeTypeFlat, FeeAmount: 15, BaseBusinessDays: 2, Active: true},
	}, nil)

	out, err := f.svc.ListOptions(context.Background(), quoteID)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 15.0, out[0].Fee)
}

func TestListOptions_TurnaroundGrowsWithDocumentCount(t *testing.T) {
	f := newDeliveryFixture()
	quoteID := uuid.New()

	f.quoteRepo.On("GetByID", mock.Anything, quoteID).
		Return(&domain.QuoteSubmission{QuoteID: quoteID, Status: domain.StatusReady}, nil)
	f.resultRepo.On("GetResult", mock.Anything, quoteID).
		Return(&domain.QuoteResult{QuoteID: quoteID, Subtotal: 300}, nil)
	f.resultRepo.On("ListSubOrders", mock.Anything, quoteID).Return([]domain.SubOrder{
		{DocumentLabel: "passport", BillablePages: 2},
		{DocumentLabel: "diploma", BillablePages: 3},
		{DocumentLabel: "transcript", BillablePages: 5},
	}, nil)
	f.refRepo.On("ListDeliveryOptions", mock.Anything).
		Return([]domain.DeliveryOption{standardOption()}, nil)

	out, err := f.svc.ListOptions(context.Background(), quoteID)

	require.NoError(t, err)
	require.Len(t, out, 1)
	// 3 base days plus 1 per document beyond the first.
	assert.Equal(t, 5, out[0].BusinessDays)

	est, err := time.Parse("2006-01-02", out[0].EstimatedDate)
	require.NoError(t, err)
	assert.True(t, est.After(time.Now()))
	assert.NotEqual(t, time.Saturday, est.Weekday())
	assert.NotEqual(t, time.Sunday, est.Weekday())
}

func TestListOptions_SameDayExcludedForMultiPageOrders(t *testing.T) {
	f := newDeliveryFixture()
	quoteID := uuid.New()

	country := "Canada"
	f.quoteRepo.On("GetByID", mock.Anything, quoteID).
		Return(&domain.QuoteSubmission{QuoteID: quoteID, Status: domain.StatusReady, CountryOfIssue: &country}, nil)
	f.resultRepo.On("GetResult", mock.Anything, quoteID).
		Return(&domain.QuoteResult{QuoteID: quoteID, Subtotal: 110}, nil)
	f.resultRepo.On("ListSubOrders", mock.Anything, quoteID).Return([]domain.SubOrder{
		{DocumentLabel: "passport", BillablePages: 2},
	}, nil)
	f.refRepo.On("ListDeliveryOptions", mock.Anything).Return([]domain.DeliveryOption{
		standardOption(),
		{ID: 4, Name: "Same Day", FeeType: domain.FeeTypeFlat, FeeAmount: 30, IsSameDay: true, Active: true},
	}, nil)

	out, err := f.svc.ListOptions(context.Background(), quoteID)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Standard", out[0].Name)
	f.refRepo.AssertNotCalled(t, "GetSameDayQualifier", mock.Anything, mock.Anything, mock.Anything)
}

func TestListOptions_SameDayExcludedForEmptyOrders(t *testing.T) {
	f := newDeliveryFixture()
	quoteID := uuid.New()

	f.quoteRepo.On("GetByID", mock.Anything, quoteID).
		Return(&domain.QuoteSubmission{QuoteID: quoteID, Status: domain.StatusReady}, nil)
	f.resultRepo.On("GetResult", mock.Anything, quoteID).Return(nil, nil)
	f.resultRepo.On("ListSubOrders", mock.Anything, quoteID).Return(nil, nil)
	f.refRepo.On("ListDeliveryOptions", mock.Anything).Return([]domain.DeliveryOption{
		{ID: 4, Name: "Same Day", FeeType: domain.FeeTypeFlat, FeeAmount: 30, IsSameDay: true, Active: true},
	}, nil)

	out, err := f.svc.ListOptions(context.Background(), quoteID)

	require.NoError(t, err)
	assert.Empty(t, out)
}
