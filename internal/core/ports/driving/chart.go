package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// ChartService analyses birth charts.
type ChartService interface {
	// Analyze builds the chart for one request and returns its report.
	// A report is returned even when some planets failed; failures are tagged
	// on the placements and listed in the report warnings.
	Analyze(ctx context.Context, req domain.ChartRequest) (*domain.Report, error)

	// AnalyzeBatch analyses requests concurrently. Results keep request order.
	// The first error cancels the remaining work.
	AnalyzeBatch(ctx context.Context, reqs []domain.ChartRequest) ([]*domain.Report, error)

	// Timeline returns the mahadasha timeline for a birth instant and nakshatra index.
	Timeline(birth time.Time, nakshatra int) (*domain.DashaTimeline, error)

	// CurrentDasha returns the period covering the calendar date of on, if any.
	// Period boundaries are compared as dates in the birth location.
	CurrentDasha(birth time.Time, nakshatra int, on time.Time) (domain.DashaPeriod, bool, error)

	// HouseLords derives the twelve house lords from the first-house lord.
	HouseLords(firstLord domain.Planet) ([]domain.Planet, error)
}
