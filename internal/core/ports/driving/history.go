package driving

import (
	"context"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// HistoryService manages saved reports.
type HistoryService interface {
	List(ctx context.Context) ([]domain.ReportSummary, error)
	Get(ctx context.Context, id string) (*domain.Report, error)
	Delete(ctx context.Context, id string) error
}
