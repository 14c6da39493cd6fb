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

type settingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo creates a new PostgreSQL-backed SettingsRepository.
func NewSettingsRepo(db *sqlx.DB) port.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	var s domain.AppSettings
	// Only the rate columns: the model carries no id, so a bare SELECT *
	// would fail to scan.
	err := r.db.GetContext(ctx, &s,
		`SELECT base_rate, tax_rate, round_increment, currency
		 FROM app_settings ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settingsRepo.GetSettings: %w", err)
	}
	return &s, nil
}
