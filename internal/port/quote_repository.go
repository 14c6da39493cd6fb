package port

import (
	"context"

	"github.com/google/uuid"

	"certiquote/internal/domain"
)

// QuoteRepository persists quote submissions.
type QuoteRepository interface {
	Create(ctx context.Context, q *domain.QuoteSubmission) error
	// GetByID returns domain.ErrQuoteNotFound when the quote does not exist.
	GetByID(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteSubmission, error)
	Update(ctx context.Context, q *domain.QuoteSubmission) error
	UpdateStatus(ctx context.Context, quoteID uuid.UUID, status domain.QuoteStatus) error
	// SetHITL flags the quote for human review and moves it to the hitl status.
	SetHITL(ctx context.Context, quoteID uuid.UUID, requested bool) error
	// UpdateResolved stores the resolved tier and certification snapshot.
	// Nil resolutions clear nothing; partially known fields stay null.
	UpdateResolved(ctx context.Context, quoteID uuid.UUID, tier *domain.TierResolution, cert *domain.CertResolution) error
}

// CustomerRepository persists customers keyed by email.
type CustomerRepository interface {
	// FindByEmail returns domain.ErrNotFound when no customer exists.
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
}
