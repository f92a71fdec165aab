package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
	"github.com/custodia-labs/graha/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyRulesDir          = "rules.dir"
	keyRulesWatch        = "rules.watch"
	keyGeocoderProvider  = "geocoder.provider"
	keyGeocoderBaseURL   = "geocoder.base_url"
	keyGeocoderUserAgent = "geocoder.user_agent"
	keyAnalysisOrb       = "analysis.orb"
	keyAnalysisDivision  = "analysis.division"
	keyAnalysisTimezone  = "analysis.timezone"
)

// defaultOllamaURL is used when Ollama is selected without a base URL.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Rules: domain.RulesSettings{
			Dir:   s.configStore.GetString(keyRulesDir),
			Watch: s.getBool(keyRulesWatch, defaults.Rules.Watch),
		},
		Geocoder: domain.GeocoderSettings{
			Provider:  s.getGeocoder(defaults.Geocoder.Provider),
			BaseURL:   s.getString(keyGeocoderBaseURL, defaults.Geocoder.BaseURL),
			UserAgent: s.getString(keyGeocoderUserAgent, defaults.Geocoder.UserAgent),
		},
		Analysis: domain.AnalysisSettings{
			Orb:      s.getFloat(keyAnalysisOrb, defaults.Analysis.Orb),
			Division: s.getString(keyAnalysisDivision, defaults.Analysis.Division),
			Timezone: s.getString(keyAnalysisTimezone, defaults.Analysis.Timezone),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyRulesDir, settings.Rules.Dir},
		{keyRulesWatch, settings.Rules.Watch},
		{keyGeocoderProvider, settings.Geocoder.Provider.String()},
		{keyGeocoderBaseURL, settings.Geocoder.BaseURL},
		{keyGeocoderUserAgent, settings.Geocoder.UserAgent},
		{keyAnalysisOrb, settings.Analysis.Orb},
		{keyAnalysisDivision, settings.Analysis.Division},
		{keyAnalysisTimezone, settings.Analysis.Timezone},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey, baseURL string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	switch {
	case baseURL != "":
		settings.LLM.BaseURL = baseURL
	case provider.IsLocal():
		settings.LLM.BaseURL = defaultOllamaURL
	default:
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetRulesDir configures the reference data directory.
func (s *SettingsService) SetRulesDir(dir string, watch bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Rules.Dir = dir
	settings.Rules.Watch = watch && dir != ""
	return s.Save(settings)
}

// SetGeocoder configures the geocoder.
func (s *SettingsService) SetGeocoder(provider domain.GeocoderProvider, baseURL, userAgent string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid geocoder: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	defaults := domain.DefaultAppSettings().Geocoder

	settings.Geocoder.Provider = provider
	settings.Geocoder.BaseURL = baseURL
	if baseURL == "" {
		settings.Geocoder.BaseURL = defaults.BaseURL
	}
	settings.Geocoder.UserAgent = userAgent
	if userAgent == "" {
		settings.Geocoder.UserAgent = defaults.UserAgent
	}
	return s.Save(settings)
}

// SetAnalysis configures analysis defaults.
func (s *SettingsService) SetAnalysis(analysis domain.AnalysisSettings) error {
	if err := validateAnalysis(analysis); err != nil {
		return err
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Analysis = analysis
	return s.Save(settings)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.LLM.Provider != "" && !settings.LLM.IsConfigured() {
		return fmt.Errorf("LLM provider %q is not fully configured", settings.LLM.Provider.Description())
	}
	if !settings.Geocoder.Provider.IsValid() {
		return fmt.Errorf("invalid geocoder: %s", settings.Geocoder.Provider)
	}
	return validateAnalysis(settings.Analysis)
}

func validateAnalysis(a domain.AnalysisSettings) error {
	if math.IsNaN(a.Orb) || a.Orb <= 0 || a.Orb > 30 {
		return fmt.Errorf("orb must be in (0, 30], got %v", a.Orb)
	}
	if a.Division != "" {
		if _, err := domain.ParseDivision(a.Division); err != nil {
			return err
		}
	}
	if _, err := domain.ParseTimezone(a.Timezone); err != nil {
		return err
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getGeocoder(defaultVal domain.GeocoderProvider) domain.GeocoderProvider {
	val := domain.GeocoderProvider(s.configStore.GetString(keyGeocoderProvider))
	if !val.IsValid() {
		return defaultVal
	}
	return val
}
