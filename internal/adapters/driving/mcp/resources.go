package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for graha resources.
	uriScheme = "graha://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reports",
		Name:        "reports",
		Description: "Saved chart reports, newest first",
		MIMEType:    "application/json",
	}, s.handleReportsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "reports/{reportId}",
		Name:        "report",
		Description: "A saved chart report",
		MIMEType:    "application/json",
	}, s.handleReportResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "rules/yogas",
		Name:        "yogas",
		Description: "The active yoga library in evaluation order",
		MIMEType:    "application/json",
	}, s.handleYogasResource)
}

// handleReportsResource returns the saved report summaries.
func (s *Server) handleReportsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	summaries, err := s.ports.History.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling reports: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleReportResource returns one saved report.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract reportId from URI: graha://reports/{reportId}
	id := extractReportID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	report, err := s.ports.History.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting report: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling report: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleYogasResource returns the yoga definitions of the active rules.
func (s *Server) handleYogasResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Rules == nil || s.ports.Rules.Current() == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	data, err := json.MarshalIndent(s.ports.Rules.Current().Yogas, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling yogas: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractReportID extracts the report ID from a URI like graha://reports/{reportId}.
func extractReportID(uri string) string {
	const prefix = uriScheme + "reports/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
