package ports

import (
	"context"
)

// GitInfo holds git repository context captured alongside a
// completed work session.
type GitInfo struct {
	Repository string
	Branch     string
}

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans the given directory for git context.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable checks if git context detection can work here.
	IsAvailable() bool
}
