package driving

import "github.com/custodia-labs/graha/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey, baseURL string) error

	// SetRulesDir configures the reference data directory. Empty selects the built-in rules.
	SetRulesDir(dir string, watch bool) error

	// SetGeocoder configures the geocoder.
	SetGeocoder(provider domain.GeocoderProvider, baseURL, userAgent string) error

	// SetAnalysis configures analysis defaults.
	SetAnalysis(analysis domain.AnalysisSettings) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
