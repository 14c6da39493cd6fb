package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"certiquote/internal/domain"
	"certiquote/internal/pricing"
)

// ResultRepository owns the two representations of a computed order: the
// denormalized results blob on quote_results and the normalized
// quote_sub_orders rows.
type ResultRepository interface {
	// GetResult returns nil, nil when no result row exists yet.
	GetResult(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteResult, error)

	// PersistResults upserts the results row and replaces all sub-order rows
	// for the quote in a single transaction. Line items have no stable
	// identity across recomputes, so replacement is delete-then-insert;
	// calling twice with the same input leaves the same observable state.
	PersistResults(ctx context.Context, quoteID uuid.UUID, resultsJSON json.RawMessage, totals pricing.Totals, currency string, items []domain.SubOrder) error

	// UpsertBlob writes only results_json, leaving the subtotal/tax/total
	// and currency columns untouched. Used by the metadata merge flow.
	UpsertBlob(ctx context.Context, quoteID uuid.UUID, resultsJSON json.RawMessage) error

	ListSubOrders(ctx context.Context, quoteID uuid.UUID) ([]domain.SubOrder, error)

	// InsertSubOrders appends rows without deleting, for backfill-on-read.
	InsertSubOrders(ctx context.Context, quoteID uuid.UUID, items []domain.SubOrder) error
}
