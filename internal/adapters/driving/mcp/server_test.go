package mcp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graha/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil chart service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingChartService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Chart: &mockChartService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("chart only is valid", func(t *testing.T) {
		ports := &Ports{Chart: &mockChartService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Chart:   &mockChartService{},
			History: &mockHistoryService{},
			Rules:   &mockRulesService{},
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_Complete(t *testing.T) {
	history := &mockHistoryService{summaries: []domain.ReportSummary{
		{ID: "3f2a9c10-aaaa"},
		{ID: "3f77b001-bbbb"},
		{ID: "7d41e2b0-cccc"},
	}}
	server, err := NewServer(&Ports{Chart: &mockChartService{}, History: history})
	require.NoError(t, err)

	complete := func(name, value string) *mcp.CompleteResult {
		t.Helper()
		res, err := server.complete(context.Background(), &mcp.CompleteRequest{
			Params: &mcp.CompleteParams{
				Ref:      &mcp.CompleteReference{Type: "ref/resource", URI: uriScheme + "reports/{reportId}"},
				Argument: mcp.CompleteParamsArgument{Name: name, Value: value},
			},
		})
		require.NoError(t, err)
		return res
	}

	t.Run("matches prefix", func(t *testing.T) {
		res := complete("reportId", "3f")
		assert.Equal(t, []string{"3f2a9c10-aaaa", "3f77b001-bbbb"}, res.Completion.Values)
		assert.Equal(t, 2, res.Completion.Total)
		assert.False(t, res.Completion.HasMore)
	})

	t.Run("other argument", func(t *testing.T) {
		assert.Empty(t, complete("topic", "").Completion.Values)
	})

	t.Run("history error", func(t *testing.T) {
		history.err = assert.AnError
		defer func() { history.err = nil }()
		_, err := server.complete(context.Background(), &mcp.CompleteRequest{
			Params: &mcp.CompleteParams{Argument: mcp.CompleteParamsArgument{Name: "reportId"}},
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestServer_CompleteCapsValues(t *testing.T) {
	history := &mockHistoryService{}
	for i := 0; i < maxCompletions+5; i++ {
		history.summaries = append(history.summaries, domain.ReportSummary{ID: fmt.Sprintf("id-%02d", i)})
	}
	server, err := NewServer(&Ports{Chart: &mockChartService{}, History: history})
	require.NoError(t, err)

	res, err := server.complete(context.Background(), &mcp.CompleteRequest{
		Params: &mcp.CompleteParams{Argument: mcp.CompleteParamsArgument{Name: "reportId", Value: "id-"}},
	})
	require.NoError(t, err)
	assert.Len(t, res.Completion.Values, maxCompletions)
	assert.Equal(t, maxCompletions+5, res.Completion.Total)
	assert.True(t, res.Completion.HasMore)
}

func TestServer_RunHTTPStopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Chart: &mockChartService{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
