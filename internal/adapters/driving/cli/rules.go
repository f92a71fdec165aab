package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graha/internal/core/domain"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the reference rules",
	Long: `Inspect and validate the YAML reference files that drive the analysis:
topic rule tables, house and planet meanings, and the yoga library.`,
	RunE: runRulesShow,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show [topic]",
	Short: "Show the active rules",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesShow,
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a rules directory",
	Long: `Loads a rules directory without activating it and reports any error.
Without --dir the built-in rules are checked.`,
	Args: cobra.NoArgs,
	RunE: runRulesValidate,
}

func init() {
	rulesValidateCmd.Flags().String("dir", "", "rules directory to validate")
	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	if rulesService == nil {
		return errors.New("rules service not configured")
	}
	ref := rulesService.Current()
	if ref == nil {
		return errors.New("no rules loaded")
	}

	if len(args) == 1 {
		topic := domain.Topic(args[0])
		if !topic.IsValid() {
			return fmt.Errorf("unknown topic %q", args[0])
		}
		showTopic(cmd, ref, topic)
		return nil
	}

	cmd.Printf("Source: %s\n", ref.Source)
	cmd.Printf("Loaded: %s\n", ref.LoadedAt.Format("2006-01-02 15:04:05"))
	cmd.Println()
	for _, topic := range domain.AllTopics() {
		cmd.Printf("  %-13s %2d house rules\n", topic, len(ref.Rules[topic]))
	}
	cmd.Printf("  %-13s %2d\n", "yogas", len(ref.Yogas))
	cmd.Println()

	for _, y := range ref.Yogas {
		cmd.Printf("  %s\n", y.Name)
		for _, c := range y.Conditions {
			cmd.Printf("      %s in house %d: %s\n", c.Kind, c.House, planetList(c.Planets))
		}
	}
	return nil
}

func showTopic(cmd *cobra.Command, ref *domain.ReferenceData, topic domain.Topic) {
	rules := ref.Rules[topic]
	keys := make([]int, 0, len(rules))
	for k := range rules {
		n, err := strconv.Atoi(k)
		if err == nil {
			keys = append(keys, n)
		}
	}
	sort.Ints(keys)

	cmd.Printf("%s rules (%s)\n", topic, ref.Source)
	if len(keys) == 0 {
		cmd.Println("  No house rules.")
		return
	}
	for _, h := range keys {
		r := rules[domain.HouseKey(h)]
		cmd.Printf("  House %2d", h)
		if m := ref.HouseMeaning(h); m != "" {
			cmd.Printf(" (%s)", m)
		}
		cmd.Println()
		if len(r.Positive) > 0 {
			cmd.Printf("    positive: %s\n", planetList(r.Positive))
		}
		if len(r.Negative) > 0 {
			cmd.Printf("    negative: %s\n", planetList(r.Negative))
		}
	}
}

func runRulesValidate(cmd *cobra.Command, _ []string) error {
	if rulesService == nil {
		return errors.New("rules service not configured")
	}
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return fmt.Errorf("getting dir flag: %w", err)
	}

	ref, err := rulesService.Validate(dir)
	if err != nil {
		return err
	}

	total := 0
	for _, rules := range ref.Rules {
		total += len(rules)
	}
	cmd.Printf("Rules in %s are valid: %d house rules, %d yogas, %d house meanings.\n",
		ref.Source, total, len(ref.Yogas), len(ref.HouseMeanings))
	return nil
}
