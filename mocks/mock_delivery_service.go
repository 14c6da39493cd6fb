package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"certiquote/internal/service"
)

// MockDeliveryService is a mock implementation of service.DeliveryService.
type MockDeliveryService struct {
	mock.Mock
}

func (m *MockDeliveryService) ListOptions(ctx context.Context, quoteID uuid.UUID) ([]service.DeliveryQuote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DeliveryQuote), args.Error(1)
}
