package noop

import (
	"context"
	"log"

	"certiquote/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs every email to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendQuoteReadyEmail(_ context.Context, toEmail, toName, quoteURL string) error {
	log.Printf("[NOOP EMAIL] Quote ready for %s (%s): %s", toName, toEmail, quoteURL)
	return nil
}

func (s *noopSender) SendQuoteLinkEmail(_ context.Context, toEmail, toName, resumeURL string) error {
	log.Printf("[NOOP EMAIL] Resume link for %s (%s): %s", toName, toEmail, resumeURL)
	return nil
}

func (s *noopSender) SendReviewNeededEmail(_ context.Context, toEmail, toName, quoteID string) error {
	log.Printf("[NOOP EMAIL] Review needed for %s (%s): quote %s", toName, toEmail, quoteID)
	return nil
}
