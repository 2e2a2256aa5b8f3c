package catalog

import (
	"context"
	"io"
)

// ObjectStorageService stores product photos in an object store
type ObjectStorageService interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns a public URL for the stored object
	URL(key string) string
}
