// Package cli implements the graha command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driving"
	"github.com/custodia-labs/graha/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	ephemeral bool
)

// Services used by the commands. Set by the bootstrap function or by tests.
var (
	chartService     driving.ChartService
	narrativeService driving.NarrativeService
	historyService   driving.HistoryService
	rulesService     driving.RulesService
	settingsService  driving.SettingsService
)

// Services bundles the driving ports the commands use.
type Services struct {
	Chart     driving.ChartService
	Narrative driving.NarrativeService
	History   driving.HistoryService
	Rules     driving.RulesService
	Settings  driving.SettingsService
}

// Options are the global flags handed to the bootstrap function.
type Options struct {
	ConfigDir string
	Ephemeral bool

	// Watch is true for long-running commands that should follow rule file edits.
	Watch bool

	Log *logger.Logger
}

// Bootstrap builds the services once flags are parsed.
// The returned cleanup function runs after the command completes.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	bootstrap Bootstrap
	cleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "graha",
	Short: "Vedic astrology chart analysis",
	Long: `graha analyses Vedic birth charts: house lords, aspects, planetary
strength, yogas and the Vimshottari mahadasha timeline.

Rules are read from YAML reference files, so the interpretation tables can
be edited without rebuilding. An LLM can optionally answer free-form
questions about a chart.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.graha)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep settings and history in memory only")
}

// SetBootstrap registers the function that wires services before a command runs.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices injects services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	chartService = s.Chart
	narrativeService = s.Narrative
	historyService = s.History
	rulesService = s.Rules
	settingsService = s.Settings
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup runs the bootstrap function unless services were injected already.
func setup(cmd *cobra.Command, _ []string) error {
	if bootstrap == nil || chartService != nil || cmd == versionCmd {
		return nil
	}

	log := logger.New(verbose, cmd.ErrOrStderr())
	svc, done, err := bootstrap(cmd.Context(), Options{
		ConfigDir: configDir,
		Ephemeral: ephemeral,
		Watch:     cmd == mcpServeCmd,
		Log:       log,
	})
	if err != nil {
		return err
	}
	SetServices(svc)
	cleanup = done
	return nil
}

// FormatError renders a command error with a hint for known failure kinds.
func FormatError(err error) string {
	switch {
	case errors.Is(err, domain.ErrLLMUnavailable):
		return fmt.Sprintf("Error: %v\nRun 'graha settings llm' to configure a language model.", err)
	case errors.Is(err, domain.ErrEphemerisUnavailable):
		return fmt.Sprintf("Error: %v\nSet 'ephemeris' in the chart file or give a manual chart with 'lagna_lord'.", err)
	case errors.Is(err, domain.ErrConfiguration):
		return fmt.Sprintf("Error: %v\nCheck the rules with 'graha rules validate'.", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
