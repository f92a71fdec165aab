// Package mcp provides an MCP (Model Context Protocol) server adapter for graha.
// It lets AI assistants analyse charts, list dasha periods and read saved reports.
package mcp

import "errors"

// ErrMissingChartService is returned when the chart service is not provided.
var ErrMissingChartService = errors.New("mcp: chart service is required")
