package port

import "context"

// EmailSender defines the contract for sending quote emails.
type EmailSender interface {
	SendQuoteReadyEmail(ctx context.Context, toEmail, toName, quoteURL string) error
	SendQuoteLinkEmail(ctx context.Context, toEmail, toName, resumeURL string) error
	SendReviewNeededEmail(ctx context.Context, toEmail, toName, quoteID string) error
}
