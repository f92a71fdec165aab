package domain

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider for narrative answers.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// RulesSettings controls where reference data is loaded from.
type RulesSettings struct {
	// Dir is a rules directory; empty uses the built-in rules.
	Dir string

	// Watch reloads the rules when files in Dir change.
	Watch bool
}

// GeocoderProvider selects the place-name resolver.
type GeocoderProvider string

// Available geocoders.
const (
	// GeocoderNominatim resolves places through an OpenStreetMap Nominatim server.
	GeocoderNominatim GeocoderProvider = "nominatim"

	// GeocoderNone disables geocoding; places resolve to the fallback coordinates.
	GeocoderNone GeocoderProvider = "none"
)

// IsValid returns true if the geocoder is recognised.
func (g GeocoderProvider) IsValid() bool {
	return g == GeocoderNominatim || g == GeocoderNone
}

// String returns the string representation.
func (g GeocoderProvider) String() string {
	return string(g)
}

// GeocoderSettings holds geocoder configuration.
type GeocoderSettings struct {
	Provider  GeocoderProvider
	BaseURL   string
	UserAgent string
}

// AnalysisSettings holds defaults for chart analysis.
type AnalysisSettings struct {
	// Orb is the degree tolerance for conjunction and opposition checks.
	Orb float64

	// Division is the divisional chart computed when a request names none.
	// Empty computes none.
	Division string

	// Timezone is used for chart files that omit one.
	Timezone string
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM      LLMSettings
	Rules    RulesSettings
	Geocoder GeocoderSettings
	Analysis AnalysisSettings
}

// Nominatim defaults.
const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultUserAgent    = "graha-cli/1.0"
)

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; deterministic reports do not need it.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		Geocoder: GeocoderSettings{
			Provider:  GeocoderNominatim,
			BaseURL:   DefaultNominatimURL,
			UserAgent: DefaultUserAgent,
		},
		Analysis: AnalysisSettings{
			Orb:      DefaultOrb,
			Timezone: "UTC",
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-2.0-flash",
	}
}
