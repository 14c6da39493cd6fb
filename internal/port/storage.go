package port

import "context"

// ObjectStorage presigns download URLs for stored quote files.
type ObjectStorage interface {
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
