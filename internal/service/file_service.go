package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"certiquote/internal/config"
	"certiquote/internal/domain"
	"certiquote/internal/notify"
	"certiquote/internal/port"
)

// FileService keeps stored quote file links usable. Upload happens outside
// this service; here keys are normalized and signed download URLs refreshed
// so the OCR pipeline and the client UI never hit an expired link.
type FileService interface {
	ListFiles(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteFile, error)
	// RefreshLinks normalizes every stored key, re-signs its URL and
	// re-announces the quote to the pipeline webhook.
	RefreshLinks(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteFile, error)
}

type fileService struct {
	fileRepo port.FileRepository
	storage  port.ObjectStorage
	notifier port.Notifier
	cfg      config.S3Config
}

// NewFileService creates a new FileService implementation.
func NewFileService(fileRepo port.FileRepository, storage port.ObjectStorage, notifier port.Notifier, cfg config.S3Config) FileService {
	return &fileService{
		fileRepo: fileRepo,
		storage:  storage,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (s *fileService) ListFiles(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteFile, error) {
	return s.fileRepo.ListByQuote(ctx, quoteID)
}

func (s *fileService) RefreshLinks(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteFile, error) {
	files, err := s.fileRepo.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.PresignExpiry) * time.Second)
	for i := range files {
		key := normalizeStorageKey(files[i].StorageKey)
		url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
		if err != nil {
			log.Printf("fileService.RefreshLinks: presign failed for file %d (%s): %v", files[i].ID, key, err)
			continue
		}
		if err := s.fileRepo.UpdateLink(ctx, files[i].ID, key, url, expiresAt); err != nil {
			return nil, err
		}
		files[i].StorageKey = key
		files[i].FileURL = &url
		exp := expiresAt
		files[i].FileURLExpiresAt = &exp
	}

	if err := s.notifier.Notify(ctx, "quote_updated", map[string]interface{}{
		"quote_id": quoteID.String(),
		"job_id":   notify.JobIDFromQuote(quoteID.String()),
	}); err != nil {
		log.Printf("fileService.RefreshLinks: webhook for %s failed: %v", quoteID, err)
	}
	return files, nil
}

// normalizeStorageKey strips the artifacts older uploads left in keys: a
// leading slash and a duplicated bucket-name prefix.
func normalizeStorageKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	key = strings.TrimPrefix(key, "orders/")
	return key
}
