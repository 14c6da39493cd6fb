package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"certiquote/internal/domain"
)

// MockFileRepo is a mock implementation of port.FileRepository.
type MockFileRepo struct {
	mock.Mock
}

func (m *MockFileRepo) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteFile, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuoteFile), args.Error(1)
}

func (m *MockFileRepo) UpdateLink(ctx context.Context, id int64, storageKey, fileURL string, expiresAt time.Time) error {
	args := m.Called(ctx, id, storageKey, fileURL, expiresAt)
	return args.Error(0)
}
