package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"certiquote/internal/config"
	"certiquote/internal/domain"
	"certiquote/internal/service"
	"certiquote/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{Bucket: "certiquote-uploads", PresignExpiry: 3600}
}

func TestRefreshLinks_NormalizesKeysAndSigns(t *testing.T) {
	fileRepo := new(mocks.MockFileRepo)
	storage := new(mocks.MockObjectStorage)
	notifier := new(mocks.MockNotifier)
	svc := service.NewFileService(fileRepo, storage, notifier, testS3Config())
	quoteID := uuid.New()

	fileRepo.On("ListByQuote", mock.Anything, quoteID).Return([]domain.QuoteFile{
		{ID: 1, QuoteID: quoteID, StorageKey: "/orders/abc/passport.pdf"},
		{ID: 2, QuoteID: quoteID, StorageKey: "abc/diploma.pdf"},
	}, nil)
	storage.On("GetPresignedURL", mock.Anything, "certiquote-uploads", "abc/passport.pdf", int64(3600)).
		Return("https://s3.example/abc/passport.pdf?sig=1", nil)
	storage.On("GetPresignedURL", mock.Anything, "certiquote-uploads", "abc/diploma.pdf", int64(3600)).
		Return("https://s3.example/abc/diploma.pdf?sig=2", nil)
	fileRepo.On("UpdateLink", mock.Anything, int64(1), "abc/passport.pdf", "https://s3.example/abc/passport.pdf?sig=1", mock.Anything).Return(nil)
	fileRepo.On("UpdateLink", mock.Anything, int64(2), "abc/diploma.pdf", "https://s3.example/abc/diploma.pdf?sig=2", mock.Anything).Return(nil)
	notifier.On("Notify", mock.Anything, "quote_updated", mock.Anything).Return(nil)

	files, err := svc.RefreshLinks(context.Background(), quoteID)

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "abc/passport.pdf", files[0].StorageKey)
	require.NotNil(t, files[0].FileURL)
	assert.Equal(t, "https://s3.example/abc/passport.pdf?sig=1", *files[0].FileURL)
	require.NotNil(t, files[0].FileURLExpiresAt)
	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRefreshLinks_SkipsFilesThatFailToSign(t *testing.T) {
	fileRepo := new(mocks.MockFileRepo)
	storage := new(mocks.MockObjectStorage)
	notifier := new(mocks.MockNotifier)
	svc := service.NewFileService(fileRepo, storage, notifier, testS3Config())
	quoteID := uuid.New()

	fileRepo.On("ListByQuote", mock.Anything, quoteID).Return([]domain.QuoteFile{
		{ID: 1, QuoteID: quoteID, StorageKey: "abc/broken.pdf"},
		{ID: 2, QuoteID: quoteID, StorageKey: "abc/fine.pdf"},
	}, nil)
	storage.On("GetPresignedURL", mock.Anything, "certiquote-uploads", "abc/broken.pdf", int64(3600)).
		Return("", errors.New("access denied"))
	storage.On("GetPresignedURL", mock.Anything, "certiquote-uploads", "abc/fine.pdf", int64(3600)).
		Return("https://s3.example/abc/fine.pdf?sig=1", nil)
	fileRepo.On("UpdateLink", mock.Anything, int64(2), "abc/fine.pdf", mock.Anything, mock.Anything).Return(nil)
	notifier.On("Notify", mock.Anything, "quote_updated", mock.Anything).Return(nil)

	files, err := svc.RefreshLinks(context.Background(), quoteID)

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Nil(t, files[0].FileURL)
	require.NotNil(t, files[1].FileURL)
	fileRepo.AssertNotCalled(t, "UpdateLink", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything)
}

func TestListFiles(t *testing.T) {
	fileRepo := new(mocks.MockFileRepo)
	svc := service.NewFileService(fileRepo, new(mocks.MockObjectStorage), new(mocks.MockNotifier), testS3Config())
	quoteID := uuid.New()

	fileRepo.On("ListByQuote", mock.Anything, quoteID).Return([]domain.QuoteFile{
		{ID: 1, QuoteID: quoteID, StorageKey: "abc/passport.pdf"},
	}, nil)

	files, err := svc.ListFiles(context.Background(), quoteID)

	require.NoError(t, err)
	assert.Len(t, files, 1)
}
