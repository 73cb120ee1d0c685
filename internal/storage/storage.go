package storage

import (
	"context"
	"io"
)

// ObjectStore stores binary objects under bucket/key.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
}
