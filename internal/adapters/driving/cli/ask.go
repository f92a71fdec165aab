package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graha/internal/adapters/driving/chartfile"
	"github.com/custodia-labs/graha/internal/core/domain"
)

var askShowPrompt bool

var askCmd = &cobra.Command{
	Use:   "ask <chart.yaml> <question>",
	Short: "Ask a question about a chart",
	Long: `Analyses the chart and asks the configured LLM the question, giving it
the houses, strengths, aspects, yogas and current mahadasha as context.

The answer is printed as returned by the model. Use --prompt to print the
prompt instead of sending it.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowPrompt, "prompt", false, "print the prompt without calling the LLM")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chartService == nil || narrativeService == nil {
		return errors.New("chart services not configured")
	}
	question := strings.Join(args[1:], " ")

	if !askShowPrompt && !narrativeService.Available() {
		return domain.ErrLLMUnavailable
	}

	req, err := chartfile.Load(args[0], defaultTimezone())
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	report, err := chartService.Analyze(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if askShowPrompt {
		prompt, err := narrativeService.BuildPrompt(report, question)
		if err != nil {
			return err
		}
		cmd.Println(prompt)
		return nil
	}

	answer, err := narrativeService.Ask(cmd.Context(), report, question)
	if err != nil {
		return err
	}
	cmd.Println(answer)
	return nil
}
