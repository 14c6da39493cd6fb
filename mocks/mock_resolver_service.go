package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"certiquote/internal/domain"
)

// MockResolverService is a mock implementation of service.ResolverService.
type MockResolverService struct {
	mock.Mock
}

func (m *MockResolverService) ResolveTier(ctx context.Context, q *domain.QuoteSubmission) (*domain.TierResolution, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TierResolution), args.Error(1)
}

func (m *MockResolverService) ResolveCert(ctx context.Context, q *domain.QuoteSubmission) (*domain.CertResolution, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CertResolution), args.Error(1)
}
