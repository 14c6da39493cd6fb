package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event string, payload map[string]interface{}) error {
	args := m.Called(ctx, event, payload)
	return args.Error(0)
}
