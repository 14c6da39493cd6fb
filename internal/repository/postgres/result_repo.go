package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"certiquote/internal/domain"
	"certiquote/internal/port"
	"certiquote/internal/pricing"
)

type resultRepo struct {
	db *sqlx.DB
}

// NewResultRepo creates a new PostgreSQL-backed ResultRepository.
func NewResultRepo(db *sqlx.DB) port.ResultRepository {
	return &resultRepo{db: db}
}

func (r *resultRepo) GetResult(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteResult, error) {
	var res domain.QuoteResult
	err := r.db.GetContext(ctx, &res,
		`SELECT * FROM quote_results WHERE quote_id = $1`, quoteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resultRepo.GetResult: %w", err)
	}
	return &res, nil
}

const insertSubOrderQuery = `
	INSERT INTO quote_sub_orders (
		quote_id, document_label, billable_pages,
		language_tier_multiplier, language_multiplier,
		unit_rate, amount_pages,
		certification_type_code, certification_type_name, certification_amount,
		line_total, created_at
	) VALUES (
		:quote_id, :document_label, :billable_pages,
		:language_tier_multiplier, :language_multiplier,
		:unit_rate, :amount_pages,
		:certification_type_code, :certification_type_name, :certification_amount,
		:line_total, NOW()
	)`

func (r *resultRepo) PersistResults(ctx context.Context, quoteID uuid.UUID, resultsJSON json.RawMessage, totals pricing.Totals, currency string, items []domain.SubOrder) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("resultRepo.PersistResults begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO quote_results (quote_id, results_json, subtotal, tax, total, currency, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (quote_id) DO UPDATE SET
			results_json = EXCLUDED.results_json,
			subtotal = EXCLUDED.subtotal,
			tax = EXCLUDED.tax,
			total = EXCLUDED.total,
			currency = EXCLUDED.currency,
			computed_at = NOW()`,
		quoteID, resultsJSON, totals.Subtotal, totals.Tax, totals.Total, currency)
	if err != nil {
		return fmt.Errorf("resultRepo.PersistResults upsert: %w", err)
	}

	// Line items have no stable identity across recomputes: full replacement
	// is the idempotency mechanism.
	if _, err := tx.ExecContext(ctx, `DELETE FROM quote_sub_orders WHERE quote_id = $1`, quoteID); err != nil {
		return fmt.Errorf("resultRepo.PersistResults delete: %w", err)
	}
	for i := range items {
		items[i].QuoteID = quoteID
		if _, err := tx.NamedExecContext(ctx, insertSubOrderQuery, &items[i]); err != nil {
			return fmt.Errorf("resultRepo.PersistResults insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("resultRepo.PersistResults commit: %w", err)
	}
	return nil
}

func (r *resultRepo) UpsertBlob(ctx context.Context, quoteID uuid.UUID, resultsJSON json.RawMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quote_results (quote_id, results_json)
		VALUES ($1, $2)
		ON CONFLICT (quote_id) DO UPDATE SET results_json = EXCLUDED.results_json`,
		quoteID, resultsJSON)
	if err != nil {
		return fmt.Errorf("resultRepo.UpsertBlob: %w", err)
	}
	return nil
}

func (r *resultRepo) ListSubOrders(ctx context.Context, quoteID uuid.UUID) ([]domain.SubOrder, error) {
	var items []domain.SubOrder
	err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM quote_sub_orders WHERE quote_id = $1 ORDER BY id ASC`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("resultRepo.ListSubOrders: %w", err)
	}
	return items, nil
}

func (r *resultRepo) InsertSubOrders(ctx context.Context, quoteID uuid.UUID, items []domain.SubOrder) error {
	for i := range items {
		items[i].QuoteID = quoteID
		if _, err := r.db.NamedExecContext(ctx, insertSubOrderQuery, &items[i]); err != nil {
			return fmt.Errorf("resultRepo.InsertSubOrders: %w", err)
		}
	}
	return nil
}
