package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"certiquote/internal/domain"
)

// MockFileService is a mock implementation of service.FileService.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) ListFiles(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteFile, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuoteFile), args.Error(1)
}

func (m *MockFileService) RefreshLinks(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteFile, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuoteFile), args.Error(1)
}
