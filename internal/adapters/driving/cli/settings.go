package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/graha/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, rules directory, geocoder and
analysis defaults.

Environment variables (GRAHA_LLM_PROVIDER, GRAHA_RULES_DIR, GRAHA_ORB, ...)
override the saved values for a single run and are never written back.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used by 'graha ask'.`,
	RunE:  runSettingsLLM,
}

var settingsRulesCmd = &cobra.Command{
	Use:   "rules [dir]",
	Short: "Configure the rules directory",
	Long: `Set the directory holding the YAML reference files. Without an argument
the built-in rules are used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsRules,
}

var settingsGeocoderCmd = &cobra.Command{
	Use:   "geocoder <nominatim|none>",
	Short: "Configure the geocoder",
	Long: `Select how birth places are resolved to coordinates.

  nominatim - OpenStreetMap Nominatim (rate limited to one request per second)
  none      - no lookup; charts without coordinates use (0, 0)`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsGeocoder,
}

var settingsAnalysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Configure analysis defaults",
	Args:  cobra.NoArgs,
	RunE:  runSettingsAnalysis,
}

func init() {
	settingsRulesCmd.Flags().Bool("watch", false, "reload rules when files change (mcp serve)")

	settingsGeocoderCmd.Flags().String("url", "", "Nominatim base URL")
	settingsGeocoderCmd.Flags().String("user-agent", "", "User-Agent sent to Nominatim")

	settingsAnalysisCmd.Flags().Float64("orb", 0, "orb in degrees for conjunctions and oppositions")
	settingsAnalysisCmd.Flags().String("division", "", "divisional chart computed by default (D1, D9, D10, D24 or none)")
	settingsAnalysisCmd.Flags().String("timezone", "", "timezone for chart files that omit one")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsRulesCmd)
	settingsCmd.AddCommand(settingsGeocoderCmd)
	settingsCmd.AddCommand(settingsAnalysisCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	if settings.LLM.Provider == "" {
		cmd.Println("  Provider: (not set)")
	} else {
		cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
	}
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Rules]")
	if settings.Rules.Dir == "" {
		cmd.Println("  Directory: (built-in)")
	} else {
		cmd.Printf("  Directory: %s\n", settings.Rules.Dir)
	}
	cmd.Printf("  Watch: %t\n", settings.Rules.Watch)
	cmd.Println()

	cmd.Println("[Geocoder]")
	cmd.Printf("  Provider: %s\n", settings.Geocoder.Provider)
	if settings.Geocoder.Provider == domain.GeocoderNominatim {
		cmd.Printf("  URL: %s\n", settings.Geocoder.BaseURL)
		cmd.Printf("  User-Agent: %s\n", settings.Geocoder.UserAgent)
	}
	cmd.Println()

	cmd.Println("[Analysis]")
	cmd.Printf("  Orb: %g°\n", settings.Analysis.Orb)
	division := settings.Analysis.Division
	if division == "" {
		division = "(none)"
	}
	cmd.Printf("  Division: %s\n", division)
	cmd.Printf("  Timezone: %s\n", settings.Analysis.Timezone)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'graha settings llm' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, reader)
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var baseURL string
	if selectedProvider.IsLocal() || selectedProvider == domain.AIProviderOpenAI {
		cmd.Print("Enter base URL [default]: ")
		baseURL = readLine(reader)
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey, baseURL); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsRules(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var dir string
	if len(args) == 1 {
		dir = args[0]
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}

	if rulesService != nil {
		if _, err := rulesService.Validate(dir); err != nil {
			return fmt.Errorf("rules directory rejected: %w", err)
		}
	}
	if err := settingsService.SetRulesDir(dir, watch); err != nil {
		return fmt.Errorf("failed to set rules directory: %w", err)
	}

	if dir == "" {
		cmd.Println("Using the built-in rules.")
	} else {
		cmd.Printf("Rules directory set to: %s\n", dir)
	}
	return nil
}

func runSettingsGeocoder(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider := domain.GeocoderProvider(strings.ToLower(args[0]))
	if !provider.IsValid() {
		return fmt.Errorf("unknown geocoder %q (use nominatim or none)", args[0])
	}
	url, _ := cmd.Flags().GetString("url")
	userAgent, _ := cmd.Flags().GetString("user-agent")

	if err := settingsService.SetGeocoder(provider, url, userAgent); err != nil {
		return fmt.Errorf("failed to set geocoder: %w", err)
	}
	cmd.Printf("Geocoder set to: %s\n", provider)
	return nil
}

func runSettingsAnalysis(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	analysis := settings.Analysis

	flags := cmd.Flags()
	if flags.Changed("orb") {
		analysis.Orb, _ = flags.GetFloat64("orb")
	}
	if flags.Changed("division") {
		analysis.Division, _ = flags.GetString("division")
		if strings.EqualFold(analysis.Division, "none") {
			analysis.Division = ""
		}
	}
	if flags.Changed("timezone") {
		analysis.Timezone, _ = flags.GetString("timezone")
	}

	if err := settingsService.SetAnalysis(analysis); err != nil {
		return fmt.Errorf("failed to set analysis defaults: %w", err)
	}
	cmd.Printf("Analysis defaults: orb %g°, division %q, timezone %s\n", analysis.Orb, analysis.Division, analysis.Timezone)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal, otherwise a plain line.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
