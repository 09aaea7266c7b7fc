package storage

import (
	"context"

	"notelint/internal/lint"
	"notelint/internal/notes"
)

// Store persists lint runs.
type Store interface {
	ReportStore
	Close() error
}

// ReportStore defines operations for persisting lint reports.
type ReportStore interface {
	// SaveReport replaces the stored snapshot with r.
	SaveReport(ctx context.Context, r *lint.Report) error

	// LoadReport returns the stored snapshot, or nil if nothing was saved yet.
	LoadReport(ctx context.Context) (*lint.Report, error)

	// FindIssuesByFile retrieves the issues recorded for one file.
	FindIssuesByFile(ctx context.Context, path string) ([]notes.Issue, error)
}
