package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"certiquote/internal/domain"
	"certiquote/internal/pricing"
)

// MockResultRepo is a mock implementation of port.ResultRepository.
type MockResultRepo struct {
	mock.Mock
}

func (m *MockResultRepo) GetResult(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteResult, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteResult), args.Error(1)
}

func (m *MockResultRepo) PersistResults(ctx context.Context, quoteID uuid.UUID, resultsJSON json.RawMessage, totals pricing.Totals, currency string, items []domain.SubOrder) error {
	args := m.Called(ctx, quoteID, resultsJSON, totals, currency, items)
	return args.Error(0)
}

func (m *MockResultRepo) UpsertBlob(ctx context.Context, quoteID uuid.UUID, resultsJSON json.RawMessage) error {
	args := m.Called(ctx, quoteID, resultsJSON)
	return args.Error(0)
}

func (m *MockResultRepo) ListSubOrders(ctx context.Context, quoteID uuid.UUID) ([]domain.SubOrder, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubOrder), args.Error(1)
}

func (m *MockResultRepo) InsertSubOrders(ctx context.Context, quoteID uuid.UUID, items []domain.SubOrder) error {
	args := m.Called(ctx, quoteID, items)
	return args.Error(0)
}
