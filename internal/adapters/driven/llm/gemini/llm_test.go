package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/custodia-labs/graha/internal/core/ports/driven"
)

func TestNewLLMService_RequiresKey(t *testing.T) {
	_, err := NewLLMService(context.Background(), Config{})
	assert.ErrorContains(t, err, "API key is required")
}

func TestNewLLMService_DefaultModel(t *testing.T) {
	svc, err := NewLLMService(context.Background(), Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.NoError(t, svc.Close())
}

func TestToContents(t *testing.T) {
	system, contents := toContents([]driven.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
		{Role: "user", Content: "what is my lagna?"},
	})

	require.NotNil(t, system)
	assert.Equal(t, "be brief", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, "what is my lagna?", contents[2].Parts[0].Text)
}

func TestToContents_NoSystem(t *testing.T) {
	system, contents := toContents([]driven.ChatMessage{{Role: "user", Content: "q"}})
	assert.Nil(t, system)
	assert.Len(t, contents, 1)
}

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(nil, 256, 0.7, []string{"END"})
	assert.Equal(t, int32(256), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, float64(*cfg.Temperature), 1e-6)
	assert.Equal(t, []string{"END"}, cfg.StopSequences)

	empty := buildConfig(nil, 0, 0, nil)
	assert.Nil(t, empty.Temperature)
	assert.Zero(t, empty.MaxOutputTokens)
}
