package download

import (
	"context"

	domain "ytdlapi/internal/domain/download"
)

// Extractor is an application port for the media extraction engine.
type Extractor interface {
	Info(ctx context.Context, url string) (domain.VideoInfo, error)
	// Download fetches url with the given format selector into outputTemplate
	// and returns the media title. onProgress receives percentages in 0..100.
	Download(ctx context.Context, url, format, outputTemplate string, onProgress func(float64)) (string, error)
}

// ArtifactStore is an application port for produced files.
type ArtifactStore interface {
	EnsureDir() error
	OutputTemplate(jobID string) string
	FindArtifact(jobID string) (domain.Artifact, error)
	ArtifactPath(name string) (string, error)
	ListArtifacts() ([]domain.Artifact, error)
	RemoveArtifact(name string) error
}
