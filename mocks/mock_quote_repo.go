package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"certiquote/internal/domain"
)

// MockQuoteRepo is a mock implementation of port.QuoteRepository.
type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Create(ctx context.Context, q *domain.QuoteSubmission) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepo) GetByID(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteSubmission, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteSubmission), args.Error(1)
}

func (m *MockQuoteRepo) Update(ctx context.Context, q *domain.QuoteSubmission) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepo) UpdateStatus(ctx context.Context, quoteID uuid.UUID, status domain.QuoteStatus) error {
	args := m.Called(ctx, quoteID, status)
	return args.Error(0)
}

func (m *MockQuoteRepo) SetHITL(ctx context.Context, quoteID uuid.UUID, requested bool) error {
	args := m.Called(ctx, quoteID, requested)
	return args.Error(0)
}

func (m *MockQuoteRepo) UpdateResolved(ctx context.Context, quoteID uuid.UUID, tier *domain.TierResolution, cert *domain.CertResolution) error {
	args := m.Called(ctx, quoteID, tier, cert)
	return args.Error(0)
}
