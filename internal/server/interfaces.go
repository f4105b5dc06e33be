package server

import (
	"context"

	"pagewatch/internal/models"
)

// BatchRunner executes a full monitoring pass over the configured URLs.
type BatchRunner interface {
	RunBatch(ctx context.Context) (*models.BatchResult, error)
}

// Renderer produces a full-page PNG screenshot of a URL.
type Renderer interface {
	CaptureFullPage(ctx context.Context, url string) ([]byte, error)
}

// ArtifactStore exposes the artifact directory operations the handlers need.
type ArtifactStore interface {
	Save(data []byte, filename string) (string, error)
	Read(filename string) ([]byte, error)
	List() ([]string, error)
	Dir() string
}

// ImageComparator compares two PNG buffers and renders a diff raster.
type ImageComparator interface {
	Compare(previous, current []byte) (*models.DiffResult, []byte, error)
}
