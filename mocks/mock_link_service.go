package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"certiquote/internal/domain"
)

// MockLinkService is a mock implementation of service.LinkService.
type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) SendResumeLink(ctx context.Context, quoteID uuid.UUID) error {
	args := m.Called(ctx, quoteID)
	return args.Error(0)
}

func (m *MockLinkService) Redeem(ctx context.Context, token string) (*domain.QuoteSubmission, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteSubmission), args.Error(1)
}
