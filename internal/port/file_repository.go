package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"certiquote/internal/domain"
)

// FileRepository persists uploaded quote file metadata. Upload itself is an
// external collaborator; this service only normalizes keys and refreshes
// signed links.
type FileRepository interface {
	ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteFile, error)
	UpdateLink(ctx context.Context, id int64, storageKey, fileURL string, expiresAt time.Time) error
}
