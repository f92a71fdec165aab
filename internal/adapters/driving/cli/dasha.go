package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graha/internal/core/domain"
)

var (
	dashaDate      string
	dashaTime      string
	dashaTimezone  string
	dashaNakshatra int
	dashaAt        string
	dashaJSON      bool
)

var dashaCmd = &cobra.Command{
	Use:   "dasha",
	Short: "Show the Vimshottari mahadasha timeline",
	Long: `Shows the nine mahadasha periods of the 120-year cycle starting at birth.

The first period belongs to the lord of the birth nakshatra (index 0-26,
Ashwini = 0). The period containing --at (default today) is marked.`,
	Args: cobra.NoArgs,
	RunE: runDasha,
}

var lordsCmd = &cobra.Command{
	Use:   "lords <planet>",
	Short: "List the house lords for a first-house lord",
	Long: `Derives the lords of all twelve houses from the lord of the first house,
following the sign order from the first sign that planet rules.`,
	Args: cobra.ExactArgs(1),
	RunE: runLords,
}

func init() {
	dashaCmd.Flags().StringVar(&dashaDate, "date", "", "birth date (YYYY-MM-DD)")
	dashaCmd.Flags().StringVar(&dashaTime, "time", "", "birth time (HH:MM)")
	dashaCmd.Flags().StringVar(&dashaTimezone, "timezone", "", "birth timezone (offset or IANA name)")
	dashaCmd.Flags().IntVarP(&dashaNakshatra, "nakshatra", "n", -1, "birth nakshatra index (0-26)")
	dashaCmd.Flags().StringVar(&dashaAt, "at", "", "date to locate (YYYY-MM-DD, default today)")
	dashaCmd.Flags().BoolVar(&dashaJSON, "json", false, "output the timeline as JSON")
	_ = dashaCmd.MarkFlagRequired("date")
	_ = dashaCmd.MarkFlagRequired("nakshatra")
	rootCmd.AddCommand(dashaCmd)

	lordsCmd.Flags().Bool("json", false, "output the lords as JSON")
	rootCmd.AddCommand(lordsCmd)
}

func runDasha(cmd *cobra.Command, _ []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	tz := dashaTimezone
	if tz == "" {
		tz = defaultTimezone()
	}
	birth, err := domain.ParseBirth(dashaDate, dashaTime, tz, "")
	if err != nil {
		return err
	}

	timeline, err := chartService.Timeline(birth.Time, dashaNakshatra)
	if err != nil {
		return err
	}

	at, err := parseDateFlag(dashaAt)
	if err != nil {
		return err
	}
	if at.IsZero() {
		at = time.Now().In(birth.Time.Location())
	}
	current, found := timeline.PeriodOn(at)

	if dashaJSON {
		out := struct {
			*domain.DashaTimeline
			Current *domain.DashaPeriod `json:"current"`
		}{DashaTimeline: timeline}
		if found {
			out.Current = &current
		}
		return outputJSON(cmd, out)
	}

	st := reportStyles
	cmd.Println(st.Title.Render(fmt.Sprintf("Mahadasha from %s (nakshatra %d)", birth.Time.Format(domain.DateLayout), dashaNakshatra)))
	for _, p := range timeline.Periods {
		line := fmt.Sprintf("  %-8s %s to %s  %3d years", p.Planet, p.Start.Format(domain.DateLayout), p.End.Format(domain.DateLayout), p.Years)
		if found && p.Start.Equal(current.Start) {
			line = st.Positive.Render(line + "  <- current")
		}
		cmd.Println(line)
	}
	if !found {
		cmd.Println(st.Warning.Render(fmt.Sprintf("No period covers %s.", at.Format(domain.DateLayout))))
	}
	return nil
}

func runLords(cmd *cobra.Command, args []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	first, err := domain.ParsePlanet(args[0])
	if err != nil {
		return err
	}
	lords, err := chartService.HouseLords(first)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out := make(map[string]domain.Planet, len(lords))
		for i, p := range lords {
			out[domain.HouseKey(i+1)] = p
		}
		return outputJSON(cmd, out)
	}

	for i, p := range lords {
		cmd.Printf("  House %2d: %s\n", i+1, p)
	}
	return nil
}
