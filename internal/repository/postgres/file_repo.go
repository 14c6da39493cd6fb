package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"certiquote/internal/domain"
	"certiquote/internal/port"
)

type fileRepo struct {
	db *sqlx.DB
}

// NewFileRepo creates a new PostgreSQL-backed FileRepository.
func NewFileRepo(db *sqlx.DB) port.FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteFile, error) {
	var files []domain.QuoteFile
	err := r.db.SelectContext(ctx, &files,
		`SELECT * FROM quote_files WHERE quote_id = $1 ORDER BY id ASC`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("fileRepo.ListByQuote: %w", err)
	}
	return files, nil
}

func (r *fileRepo) UpdateLink(ctx context.Context, id int64, storageKey, fileURL string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE quote_files SET
			storage_key = $2,
			file_url = $3,
			file_url_expires_at = $4
		WHERE id = $1`,
		id, storageKey, fileURL, expiresAt)
	if err != nil {
		return fmt.Errorf("fileRepo.UpdateLink: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
