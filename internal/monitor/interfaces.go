package monitor

import (
	"context"
	"time"

	"pagewatch/internal/models"
)

// Renderer produces a full-page PNG for a URL.
type Renderer interface {
	CaptureFullPage(ctx context.Context, pageURL string) ([]byte, error)
}

// ArtifactStore is the slice of the datastore the pipeline needs.
type ArtifactStore interface {
	Save(data []byte, filename string) (string, error)
	Read(filename string) ([]byte, error)
	FindMostRecent(normalizedKey string, excluding string) (string, error)
	Prune(retention time.Duration) error
}

// ImageComparator compares two equally sized PNG buffers and returns the
// change statistics plus the diff raster for the caller to persist.
type ImageComparator interface {
	Compare(bufA, bufB []byte) (*models.DiffResult, []byte, error)
}
