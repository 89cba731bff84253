package storage

import (
	"context"
	"time"
)

// FileStorage abstracts the object store holding practitioner documents and
// media. Implementations return an opaque object key that repositories
// persist as the file path.
type FileStorage interface {
	Upload(ctx context.Context, prefix string, data []byte, filename, contentType string) (string, error)

	Delete(ctx context.Context, objectKey string) error

	Get(ctx context.Context, objectKey string) ([]byte, error)

	PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}
