package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graha/internal/adapters/driven/ai"
	rulesfile "github.com/custodia-labs/graha/internal/adapters/driven/rules/file"
	"github.com/custodia-labs/graha/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/graha/internal/conditions"
	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/services"
	"github.com/custodia-labs/graha/internal/logger"
)

// manualChartYAML places Sun and Mercury in the first house and Jupiter and
// Moon in the fourth, with Mars ruling the first.
const manualChartYAML = `label: Test chart
birth:
  date: 1997-07-11
  time: "14:30"
  timezone: "+05:30"
  place: Chennai
  latitude: 13.08
  longitude: 80.27
nakshatra: 12
lagna_lord: Mars
houses:
  1: [Sun, Mercury]
  4: [Jupiter, Moon]
signs:
  Sun: Aries
`

// testEnv holds the real services injected for a command test.
type testEnv struct {
	services *Services
	reports  *memory.ReportStore
	settings *services.SettingsService
}

// setupTestServices injects real services backed by the embedded rules and
// in-memory stores. Services and flags are reset when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	registry := conditions.NewDefaultRegistry()
	loader := rulesfile.NewLoader(func(defs []domain.YogaDefinition) error {
		return services.ValidateYogaDefinitions(registry, defs)
	})
	store, err := rulesfile.NewStore(loader, "", logger.Nop())
	require.NoError(t, err)

	reports := memory.NewReportStore()
	chart := services.NewChartService(store, registry, logger.Nop())
	chart.SetReportStore(reports)

	settings := services.NewSettingsService(memory.NewConfigStore(), ai.NewConfigValidator())

	svc := &Services{
		Chart:     chart,
		Narrative: services.NewNarrativeService(nil, nil, logger.Nop()),
		History:   services.NewHistoryService(reports),
		Rules:     services.NewRulesService(store, loader),
		Settings:  settings,
	}
	SetServices(svc)
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
	})
	return &testEnv{services: svc, reports: reports, settings: settings}
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// writeChart writes a chart file into a temporary directory.
func writeChart(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
