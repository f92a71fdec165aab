package mcp

import (
	"github.com/custodia-labs/graha/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chart runs analyses. Required.
	Chart driving.ChartService

	// History serves saved reports. Optional.
	History driving.HistoryService

	// Rules exposes the yoga library. Optional.
	Rules driving.RulesService

	// DefaultTimezone applies to tool calls that omit a timezone.
	DefaultTimezone string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chart == nil {
		return ErrMissingChartService
	}
	return nil
}
