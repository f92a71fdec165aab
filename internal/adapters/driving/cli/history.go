package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved reports",
	Long:  `List, show and delete reports saved with 'graha analyze --save'.`,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved report",
	Long:  `Show a saved report. A unique prefix of the report ID is enough.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyShowCmd.Flags().Bool("json", false, "output the report as JSON")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	summaries, err := historyService.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		cmd.Println("No saved reports.")
		return nil
	}
	for _, s := range summaries {
		cmd.Printf("  %s  %s  %s\n", shortID(s.ID), s.CreatedAt.Format("2006-01-02 15:04"), s.Label)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	report, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return outputJSON(cmd, report)
	}
	cmd.Print(renderReport(report))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	cmd.Printf("Deleted report %s\n", args[0])
	return nil
}
