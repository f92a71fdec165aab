package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graha/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/graha/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults, *settings)
	assert.False(t, settings.LLM.IsConfigured())
	assert.Equal(t, domain.GeocoderNominatim, settings.Geocoder.Provider)
	assert.InDelta(t, domain.DefaultOrb, settings.Analysis.Orb, 1e-9)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.provider", "anthropic")
	_ = store.Set("llm.model", "claude-x")
	_ = store.Set("llm.api_key", "sk-ant")
	_ = store.Set("rules.dir", "/srv/rules")
	_ = store.Set("rules.watch", true)
	_ = store.Set("geocoder.provider", "none")
	_ = store.Set("analysis.orb", 8.0)
	_ = store.Set("analysis.division", "D9")
	_ = store.Set("analysis.timezone", "Asia/Kolkata")

	settings, err := NewSettingsService(store, nil).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.LLMSettings{Provider: domain.AIProviderAnthropic, Model: "claude-x", APIKey: "sk-ant"}, settings.LLM)
	assert.Equal(t, domain.RulesSettings{Dir: "/srv/rules", Watch: true}, settings.Rules)
	assert.Equal(t, domain.GeocoderNone, settings.Geocoder.Provider)
	assert.Equal(t, domain.AnalysisSettings{Orb: 8, Division: "D9", Timezone: "Asia/Kolkata"}, settings.Analysis)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.provider", "palmistry")
	_ = store.Set("geocoder.provider", "carrier-pigeon")

	settings, err := NewSettingsService(store, nil).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.AIProvider(""), settings.LLM.Provider)
	assert.Equal(t, domain.GeocoderNominatim, settings.Geocoder.Provider)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.api_key", "kept")
	service := NewSettingsService(store, nil)

	settings := domain.DefaultAppSettings()
	settings.LLM = domain.LLMSettings{Provider: domain.AIProviderOpenAI, Model: "gpt-4o"}
	settings.Analysis.Orb = 5

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, 1, store.Saves())
	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, "kept", store.GetString("llm.api_key"), "an empty key never clears the stored one")
	assert.InDelta(t, 5.0, store.GetFloat("analysis.orb"), 1e-9)
}

type failingConfigStore struct {
	*memory.ConfigStore
	failOn string
}

func (f *failingConfigStore) Set(key string, value any) error {
	if key == f.failOn {
		return assert.AnError
	}
	return f.ConfigStore.Set(key, value)
}

func TestSettingsService_Save_SetError(t *testing.T) {
	for _, key := range []string{"llm.provider", "rules.dir", "analysis.orb", "llm.api_key"} {
		t.Run(key, func(t *testing.T) {
			store := &failingConfigStore{ConfigStore: memory.NewConfigStore(), failOn: key}
			service := NewSettingsService(store, nil)

			settings := domain.DefaultAppSettings()
			settings.LLM.APIKey = "sk"

			err := service.Save(&settings)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "save")
			assert.Equal(t, 0, store.Saves())
		})
	}
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	tests := []struct {
		name        string
		provider    domain.AIProvider
		model       string
		apiKey      string
		baseURL     string
		wantErr     bool
		wantModel   string
		wantBaseURL string
	}{
		{name: "ollama defaults", provider: domain.AIProviderOllama, wantModel: "llama3.2", wantBaseURL: "http://localhost:11434"},
		{name: "openai with key", provider: domain.AIProviderOpenAI, apiKey: "sk", wantModel: "gpt-4o-mini"},
		{name: "gemini custom model", provider: domain.AIProviderGemini, model: "gemini-pro", apiKey: "g", wantModel: "gemini-pro"},
		{name: "compatible server", provider: domain.AIProviderOpenAI, apiKey: "sk", baseURL: "http://vllm:8000/v1", wantModel: "gpt-4o-mini", wantBaseURL: "http://vllm:8000/v1"},
		{name: "missing key", provider: domain.AIProviderAnthropic, wantErr: true},
		{name: "unknown provider", provider: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store, nil)

			err := service.SetLLMProvider(tt.provider, tt.model, tt.apiKey, tt.baseURL)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, store.Saves())
				return
			}
			require.NoError(t, err)

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.LLM.Provider)
			assert.Equal(t, tt.wantModel, settings.LLM.Model)
			assert.Equal(t, tt.wantBaseURL, settings.LLM.BaseURL)
			assert.Equal(t, tt.apiKey, settings.LLM.APIKey)
			assert.True(t, settings.LLM.IsConfigured())
		})
	}
}

func TestSettingsService_SetRulesDir(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NoError(t, service.SetRulesDir("/etc/graha/rules", true))
	settings, _ := service.Get()
	assert.Equal(t, domain.RulesSettings{Dir: "/etc/graha/rules", Watch: true}, settings.Rules)

	require.NoError(t, service.SetRulesDir("", true))
	settings, _ = service.Get()
	assert.False(t, settings.Rules.Watch, "built-in rules cannot be watched")
}

func TestSettingsService_SetGeocoder(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	assert.Error(t, service.SetGeocoder("bogus", "", ""))

	require.NoError(t, service.SetGeocoder(domain.GeocoderNone, "", ""))
	settings, _ := service.Get()
	assert.Equal(t, domain.GeocoderNone, settings.Geocoder.Provider)
	assert.Equal(t, domain.DefaultNominatimURL, settings.Geocoder.BaseURL)
	assert.Equal(t, domain.DefaultUserAgent, settings.Geocoder.UserAgent)

	require.NoError(t, service.SetGeocoder(domain.GeocoderNominatim, "http://geo.local", "me/1.0"))
	settings, _ = service.Get()
	assert.Equal(t, "http://geo.local", settings.Geocoder.BaseURL)
	assert.Equal(t, "me/1.0", settings.Geocoder.UserAgent)
}

func TestSettingsService_SetAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		analysis domain.AnalysisSettings
		wantErr  bool
	}{
		{name: "valid", analysis: domain.AnalysisSettings{Orb: 8, Division: "d9", Timezone: "+05:30"}},
		{name: "no division", analysis: domain.AnalysisSettings{Orb: 1, Timezone: "UTC"}},
		{name: "zero orb", analysis: domain.AnalysisSettings{Orb: 0, Timezone: "UTC"}, wantErr: true},
		{name: "huge orb", analysis: domain.AnalysisSettings{Orb: 31, Timezone: "UTC"}, wantErr: true},
		{name: "unknown division", analysis: domain.AnalysisSettings{Orb: 6, Division: "D7", Timezone: "UTC"}, wantErr: true},
		{name: "unknown timezone", analysis: domain.AnalysisSettings{Orb: 6, Timezone: "Mars/Olympus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			err := NewSettingsService(store, nil).SetAnalysis(tt.analysis)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, store.Saves())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, store.Saves())
		})
	}
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr bool
	}{
		{name: "defaults", values: nil},
		{name: "configured llm", values: map[string]any{"llm.provider": "openai", "llm.api_key": "sk"}},
		{name: "cloud llm without key", values: map[string]any{"llm.provider": "openai"}, wantErr: true},
		{name: "bad orb", values: map[string]any{"analysis.orb": 45.0}, wantErr: true},
		{name: "bad timezone", values: map[string]any{"analysis.timezone": "+99:00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			for k, v := range tt.values {
				_ = store.Set(k, v)
			}
			err := NewSettingsService(store, nil).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

type mockAIConfigValidator struct {
	llmErr error
	seen   *domain.LLMSettings
}

func (m *mockAIConfigValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	m.seen = cfg
	return m.llmErr
}

func TestSettingsService_ValidateLLMConfig(t *testing.T) {
	t.Run("nil validator", func(t *testing.T) {
		assert.NoError(t, NewSettingsService(memory.NewConfigStore(), nil).ValidateLLMConfig())
	})

	t.Run("passes current settings", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set("llm.provider", "ollama")
		validator := &mockAIConfigValidator{}

		require.NoError(t, NewSettingsService(store, validator).ValidateLLMConfig())
		require.NotNil(t, validator.seen)
		assert.Equal(t, domain.AIProviderOllama, validator.seen.Provider)
	})

	t.Run("error", func(t *testing.T) {
		validator := &mockAIConfigValidator{llmErr: assert.AnError}
		err := NewSettingsService(memory.NewConfigStore(), validator).ValidateLLMConfig()
		assert.ErrorIs(t, err, assert.AnError)
	})
}
