package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"certiquote/internal/domain"
	"certiquote/internal/port"
)

type quoteRepo struct {
	db *sqlx.DB
}

// NewQuoteRepo creates a new PostgreSQL-backed QuoteRepository.
func NewQuoteRepo(db *sqlx.DB) port.QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, q *domain.QuoteSubmission) error {
	query := `
		INSERT INTO quote_submissions (quote_id, client_name, client_email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())`
	if _, err := r.db.ExecContext(ctx, query, q.QuoteID, q.ClientName, q.ClientEmail, q.Status); err != nil {
		return fmt.Errorf("quoteRepo.Create: %w", err)
	}
	return nil
}

func (r *quoteRepo) GetByID(ctx context.Context, quoteID uuid.UUID) (*domain.QuoteSubmission, error) {
	var q domain.QuoteSubmission
	err := r.db.GetContext(ctx, &q,
		`SELECT * FROM quote_submissions WHERE quote_id = $1`, quoteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("quoteRepo.GetByID: %w", err)
	}
	return &q, nil
}

func (r *quoteRepo) Update(ctx context.Context, q *domain.QuoteSubmission) error {
	query := `
		UPDATE quote_submissions SET
			customer_id = :customer_id,
			client_name = :client_name,
			client_email = :client_email,
			phone = :phone,
			source_lang = :source_lang,
			target_lang = :target_lang,
			source_code = :source_code,
			target_code = :target_code,
			intended_use = :intended_use,
			intended_use_id = :intended_use_id,
			country_of_issue = :country_of_issue,
			country_code = :country_code,
			status = :status,
			updated_at = NOW()
		WHERE quote_id = :quote_id`
	res, err := r.db.NamedExecContext(ctx, query, q)
	if err != nil {
		return fmt.Errorf("quoteRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepo) UpdateStatus(ctx context.Context, quoteID uuid.UUID, status domain.QuoteStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quote_submissions SET status = $2, updated_at = NOW() WHERE quote_id = $1`,
		quoteID, status)
	if err != nil {
		return fmt.Errorf("quoteRepo.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepo) SetHITL(ctx context.Context, quoteID uuid.UUID, requested bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quote_submissions SET status = $2, hitl_requested = $3, updated_at = NOW() WHERE quote_id = $1`,
		quoteID, domain.StatusHITL, requested)
	if err != nil {
		return fmt.Errorf("quoteRepo.SetHITL: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepo) UpdateResolved(ctx context.Context, quoteID uuid.UUID, tier *domain.TierResolution, cert *domain.CertResolution) error {
	var tierName *string
	var tierMult *float64
	if tier != nil {
		tierName = &tier.Name
		tierMult = tier.Multiplier
	}
	var certName, certCode *string
	var certRate *float64
	if cert != nil {
		certName = &cert.Name
		certCode = cert.Code
		certRate = cert.Rate
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE quote_submissions SET
			tier_name = $2,
			tier_multiplier = $3,
			cert_type_name = $4,
			cert_type_code = $5,
			cert_type_rate = $6,
			updated_at = NOW()
		WHERE quote_id = $1`,
		quoteID, tierName, tierMult, certName, certCode, certRate)
	if err != nil {
		return fmt.Errorf("quoteRepo.UpdateResolved: %w", err)
	}
	return nil
}
