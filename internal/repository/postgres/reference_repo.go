package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"certiquote/internal/domain"
	"certiquote/internal/port"
)

type referenceRepo struct {
	db *sqlx.DB
}

// NewReferenceRepo creates a new PostgreSQL-backed ReferenceRepository.
func NewReferenceRepo(db *sqlx.DB) port.ReferenceRepository {
	return &referenceRepo{db: db}
}

func (r *referenceRepo) FindLanguage(ctx context.Context, code, name string) (*domain.LanguageRow, error) {
	// The languages table has carried the code and display name under
	// several column names over time; match against all of them.
	var row domain.LanguageRow
	if code != "" {
		err := r.db.GetContext(ctx, &row, `
			SELECT * FROM languages
			WHERE code = $1 OR iso_code = $1 OR lang_code = $1
			LIMIT 1`, code)
		if err == nil {
			return &row, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("referenceRepo.FindLanguage code: %w", err)
		}
	}
	if name != "" {
		err := r.db.GetContext(ctx, &row, `
			SELECT * FROM languages
			WHERE name ILIKE $1 OR label ILIKE $1 OR language ILIKE $1 OR title ILIKE $1
			LIMIT 1`, name)
		if err == nil {
			return &row, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("referenceRepo.FindLanguage name: %w", err)
		}
	}
	return nil, nil
}

func (r *referenceRepo) GetTierByID(ctx context.Context, id int64) (*domain.TierRow, error) {
	var row domain.TierRow
	err := r.db.GetContext(ctx, &row, `SELECT id, name, multiplier FROM tiers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.GetTierByID: %w", err)
	}
	return &row, nil
}

func (r *referenceRepo) GetTierByName(ctx context.Context, name string) (*domain.TierRow, error) {
	var row domain.TierRow
	err := r.db.GetContext(ctx, &row, `SELECT id, name, multiplier FROM tiers WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.GetTierByName: %w", err)
	}
	return &row, nil
}

func (r *referenceRepo) GetIntendedUse(ctx context.Context, id int64) (*domain.IntendedUseRow, error) {
	var row domain.IntendedUseRow
	err := r.db.GetContext(ctx, &row, `SELECT id, name FROM intended_uses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.GetIntendedUse: %w", err)
	}
	return &row, nil
}

func (r *referenceRepo) GetCertMap(ctx context.Context, intendedUseID int64) (*domain.CertMapRow, error) {
	var row domain.CertMapRow
	err := r.db.GetContext(ctx, &row, `
		SELECT intended_use_id, cert_type_id, cert_type_name, cert_type_code
		FROM intended_use_cert_map WHERE intended_use_id = $1
		LIMIT 1`, intendedUseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.GetCertMap: %w", err)
	}
	return &row, nil
}

const certTypeColumns = `id, name, code, pricing_type, rate, amount, multiplier`

func (r *referenceRepo) GetCertTypeByID(ctx context.Context, id int64) (*domain.CertTypeRow, error) {
	var row domain.CertTypeRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+certTypeColumns+` FROM cert_types WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.GetCertTypeByID: %w", err)
	}
	return &row, nil
}

func (r *referenceRepo) GetCertTypeByName(ctx context.Context, name string) (*domain.CertTypeRow, error) {
	var row domain.CertTypeRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+certTypeColumns+` FROM cert_types WHERE name ILIKE $1 LIMIT 1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.GetCertTypeByName: %w", err)
	}
	return &row, nil
}

func (r *referenceRepo) SearchCertType(ctx context.Context, term string) (*domain.CertTypeRow, error) {
	var row domain.CertTypeRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+certTypeColumns+` FROM cert_types WHERE name ILIKE $1 ORDER BY id LIMIT 1`,
		"%"+term+"%")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.SearchCertType: %w", err)
	}
	return &row, nil
}

func (r *referenceRepo) ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error) {
	var opts []domain.DeliveryOption
	err := r.db.SelectContext(ctx, &opts, `
		SELECT id, name, fee_type, fee_amount, base_business_days, addl_business_days,
		       is_same_day, active, display_order
		FROM delivery_options WHERE active = TRUE ORDER BY display_order`)
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.ListDeliveryOptions: %w", err)
	}
	return opts, nil
}

func (r *referenceRepo) GetSameDayQualifier(ctx context.Context, docType, country string) (*domain.SameDayQualifier, error) {
	var row domain.SameDayQualifier
	err := r.db.GetContext(ctx, &row, `
		SELECT id, doc_type, country, active FROM same_day_qualifiers
		WHERE doc_type = $1 AND country = $2 AND active = TRUE
		LIMIT 1`, docType, country)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.GetSameDayQualifier: %w", err)
	}
	return &row, nil
}
