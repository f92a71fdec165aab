package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graha/internal/adapters/driving/chartfile"
	"github.com/custodia-labs/graha/internal/core/domain"
)

var (
	analyzeJSON     bool
	analyzeDivision string
	analyzeAt       string
	analyzeSave     bool
	analyzeLabel    string
	analyzeExplain  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <chart.yaml>...",
	Short: "Analyse birth charts",
	Long: `Analyses one or more chart files: house lords, planetary strength, aspects,
yogas, topic verdicts and the current mahadasha.

Several files are analysed concurrently and reported in argument order.

A chart file gives the birth data and either an ephemeris positions file
or a manual chart (lagna_lord plus planets per house):

  birth:
    date: 1997-07-11
    time: "14:30"
    timezone: "+05:30"
    place: Chennai
  nakshatra: 12
  ephemeris: positions.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the report as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeDivision, "division", "d", "", "divisional chart to compute (D1, D9, D10, D24)")
	analyzeCmd.Flags().StringVar(&analyzeAt, "at", "", "date for the current dasha (YYYY-MM-DD, default today)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "save the report to history")
	analyzeCmd.Flags().StringVar(&analyzeLabel, "label", "", "report label (single chart only)")
	analyzeCmd.Flags().BoolVar(&analyzeExplain, "explain", false, "append a plain-language explanation")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}
	if analyzeLabel != "" && len(args) > 1 {
		return errors.New("--label applies to a single chart")
	}

	at, err := parseDateFlag(analyzeAt)
	if err != nil {
		return err
	}

	tz := defaultTimezone()
	reqs := make([]domain.ChartRequest, 0, len(args))
	for _, path := range args {
		req, err := chartfile.Load(path, tz)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if analyzeDivision != "" {
			req.Division = analyzeDivision
		}
		if analyzeLabel != "" {
			req.Label = analyzeLabel
		}
		req.AsOf = at
		req.Save = analyzeSave
		reqs = append(reqs, req)
	}

	var reports []*domain.Report
	if len(reqs) == 1 {
		report, err := chartService.Analyze(cmd.Context(), reqs[0])
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		reports = []*domain.Report{report}
	} else {
		reports, err = chartService.AnalyzeBatch(cmd.Context(), reqs)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
	}

	if analyzeJSON {
		if len(reports) == 1 {
			return outputJSON(cmd, reports[0])
		}
		return outputJSON(cmd, reports)
	}

	for i, r := range reports {
		if i > 0 {
			cmd.Println()
		}
		cmd.Print(renderReport(r))
		if analyzeExplain && narrativeService != nil {
			cmd.Println()
			cmd.Println(narrativeService.RenderText(r))
		}
		if analyzeSave {
			cmd.Printf("\nSaved as %s\n", r.ID)
		}
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// parseDateFlag parses a YYYY-MM-DD flag value as a calendar date. Empty yields
// the zero time.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}

// defaultTimezone returns the configured timezone for chart files that omit one.
func defaultTimezone() string {
	if settingsService == nil {
		return "UTC"
	}
	settings, err := settingsService.Get()
	if err != nil || settings.Analysis.Timezone == "" {
		return "UTC"
	}
	return settings.Analysis.Timezone
}
