package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graha/internal/core/domain"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "llm unavailable",
			err:      fmt.Errorf("ask: %w", domain.ErrLLMUnavailable),
			contains: []string{"Error: ask:", "graha settings llm"},
		},
		{
			name:     "ephemeris unavailable",
			err:      domain.ErrEphemerisUnavailable,
			contains: []string{"lagna_lord"},
		},
		{
			name:     "configuration",
			err:      domain.NewError("load rules", domain.KindConfiguration, "yogas.yaml: bad"),
			contains: []string{"yogas.yaml: bad", "graha rules validate"},
		},
		{
			name:     "other",
			err:      errors.New("boom"),
			contains: []string{"Error: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
		})
	}
	assert.Equal(t, "Error: boom", FormatError(errors.New("boom")))
}

func TestSetup_Bootstrap(t *testing.T) {
	env := setupTestServices(t)
	SetServices(nil)

	var got Options
	cleaned := false
	SetBootstrap(func(_ context.Context, opts Options) (*Services, func(), error) {
		got = opts
		return env.services, func() { cleaned = true }, nil
	})
	t.Cleanup(func() { SetBootstrap(nil) })

	_, err := executeCommand(t, "--ephemeral", "--config-dir", "/tmp/graha-test", "lords", "Sun")
	require.NoError(t, err)

	assert.True(t, got.Ephemeral)
	assert.Equal(t, "/tmp/graha-test", got.ConfigDir)
	assert.False(t, got.Watch)
	assert.NotNil(t, got.Log)
	assert.True(t, cleaned, "cleanup runs after the command")
}

func TestSetup_BootstrapError(t *testing.T) {
	SetServices(nil)
	SetBootstrap(func(context.Context, Options) (*Services, func(), error) {
		return nil, nil, errors.New("cannot open store")
	})
	t.Cleanup(func() {
		SetBootstrap(nil)
		resetFlags(rootCmd)
	})

	_, err := executeCommand(t, "lords", "Sun")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open store")
}

func TestSetup_SkipsVersion(t *testing.T) {
	SetServices(nil)
	called := false
	SetBootstrap(func(context.Context, Options) (*Services, func(), error) {
		called = true
		return &Services{}, nil, nil
	})
	t.Cleanup(func() { SetBootstrap(nil) })

	_, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.False(t, called)
}

func TestCommandsWithoutServices(t *testing.T) {
	SetServices(nil)

	for _, args := range [][]string{
		{"lords", "Sun"},
		{"rules"},
		{"history"},
		{"settings"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, err := executeCommand(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not configured")
		})
	}
}
