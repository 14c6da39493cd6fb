package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"certiquote/internal/domain"
	"certiquote/internal/service"
)

// MockQuoteService is a mock implementation of service.QuoteService.
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Create(ctx context.Context, input *service.CreateQuoteInput) (*domain.QuoteSubmission, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteSubmission), args.Error(1)
}

func (m *MockQuoteService) Get(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteSubmission, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteSubmission), args.Error(1)
}

func (m *MockQuoteService) UpdateClient(ctx context.Context, quoteID uuid.UUID, input *service.UpdateClientInput) (*domain.QuoteSubmission, error) {
	args := m.Called(ctx, quoteID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteSubmission), args.Error(1)
}

func (m *MockQuoteService) Accept(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteSubmission, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteSubmission), args.Error(1)
}

func (m *MockQuoteService) RequestHITL(ctx context.Context, quoteID uuid.UUID) error {
	args := m.Called(ctx, quoteID)
	return args.Error(0)
}

func (m *MockQuoteService) UpdateMetadata(ctx context.Context, quoteID uuid.UUID, input *service.UpdateMetadataInput) error {
	args := m.Called(ctx, quoteID, input)
	return args.Error(0)
}

func (m *MockQuoteService) Status(ctx context.Context, quoteID uuid.UUID) (*service.QuoteStatusView, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuoteStatusView), args.Error(1)
}

func (m *MockQuoteService) MarkPaid(ctx context.Context, quoteID uuid.UUID, reference string) error {
	args := m.Called(ctx, quoteID, reference)
	return args.Error(0)
}
