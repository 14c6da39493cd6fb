package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendQuoteReadyEmail(ctx context.Context, toEmail, toName, quoteURL string) error {
	args := m.Called(ctx, toEmail, toName, quoteURL)
	return args.Error(0)
}

func (m *MockEmailSender) SendQuoteLinkEmail(ctx context.Context, toEmail, toName, resumeURL string) error {
	args := m.Called(ctx, toEmail, toName, resumeURL)
	return args.Error(0)
}

func (m *MockEmailSender) SendReviewNeededEmail(ctx context.Context, toEmail, toName, quoteID string) error {
	args := m.Called(ctx, toEmail, toName, quoteID)
	return args.Error(0)
}
