package driven

import (
	"context"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// ReportStore persists analysis reports.
type ReportStore interface {
	// Save stores a report. The report ID must be set.
	Save(ctx context.Context, report *domain.Report) error

	// Get retrieves a report by ID. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// List returns summaries ordered newest first.
	List(ctx context.Context) ([]domain.ReportSummary, error)

	// Delete removes a report. Returns domain.ErrNotFound if missing.
	Delete(ctx context.Context, id string) error
}
