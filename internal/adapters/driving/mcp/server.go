package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// Version is the MCP server version.
const Version = "0.1.0"

const instructions = `graha analyses Vedic birth charts.

Use analyze_chart with either birth details (date, time, place, or latitude and
longitude) or a manual chart listing the occupants of each house. Use
current_dasha for the Vimshottari mahadasha running at a date and house_lords
for the sign lords of the twelve houses.

Saved reports are readable at graha://reports and graha://reports/{reportId}.
The active yoga library is at graha://rules/yogas.`

// maxCompletions caps the report ids offered for one completion request.
const maxCompletions = 20

const shutdownTimeout = 5 * time.Second

// Server is the MCP server for graha.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates an MCP server exposing the chart tools and the report
// and rule resources.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "graha",
		Version: Version,
	}, &mcp.ServerOptions{
		Instructions:      instructions,
		CompletionHandler: s.complete,
	})

	s.registerTools()
	s.registerResources()

	return s, nil
}

// complete offers saved report ids for the reportId template argument.
func (s *Server) complete(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	result := &mcp.CompleteResult{Completion: mcp.CompletionResultDetails{Values: []string{}}}
	if s.ports.History == nil || req.Params == nil || req.Params.Argument.Name != "reportId" {
		return result, nil
	}

	summaries, err := s.ports.History.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	result.Completion.Values = matchReportIDs(summaries, req.Params.Argument.Value)
	result.Completion.Total = len(result.Completion.Values)
	if len(result.Completion.Values) > maxCompletions {
		result.Completion.Values = result.Completion.Values[:maxCompletions]
		result.Completion.HasMore = true
	}
	return result, nil
}

// Run serves over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled, then drains open requests.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func matchReportIDs(summaries []domain.ReportSummary, prefix string) []string {
	out := []string{}
	for _, sum := range summaries {
		if strings.HasPrefix(sum.ID, prefix) {
			out = append(out, sum.ID)
		}
	}
	return out
}
