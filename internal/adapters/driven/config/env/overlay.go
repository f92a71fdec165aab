// Package env layers environment variable overrides over a ConfigStore.
//
// Overrides apply to reads only. Set and Save go to the wrapped store, so
// exporting GRAHA_LLM_API_KEY never writes the key to config.toml.
package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/graha/internal/core/ports/driven"
)

// Ensure Overlay implements the interface.
var _ driven.ConfigStore = (*Overlay)(nil)

// Overrides lists the recognised environment variables.
type Overrides struct {
	LLMProvider      string   `env:"GRAHA_LLM_PROVIDER"`
	LLMModel         string   `env:"GRAHA_LLM_MODEL"`
	LLMAPIKey        string   `env:"GRAHA_LLM_API_KEY"`
	LLMBaseURL       string   `env:"GRAHA_LLM_BASE_URL"`
	RulesDir         string   `env:"GRAHA_RULES_DIR"`
	RulesWatch       *bool    `env:"GRAHA_RULES_WATCH"`
	Geocoder         string   `env:"GRAHA_GEOCODER"`
	Orb              *float64 `env:"GRAHA_ORB"`
	AnalysisDivision string   `env:"GRAHA_DIVISION"`
	Timezone         string   `env:"GRAHA_TIMEZONE"`
}

// Parse reads overrides from the process environment.
func Parse() (Overrides, error) {
	return ParseWith(env.Options{})
}

// ParseWith reads overrides using explicit options. Tests pass Environment.
func ParseWith(opts env.Options) (Overrides, error) {
	var o Overrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// values maps config keys to the overrides that are set.
func (o Overrides) values() map[string]any {
	out := map[string]any{}
	put := func(key, val string) {
		if val != "" {
			out[key] = val
		}
	}
	put("llm.provider", o.LLMProvider)
	put("llm.model", o.LLMModel)
	put("llm.api_key", o.LLMAPIKey)
	put("llm.base_url", o.LLMBaseURL)
	put("rules.dir", o.RulesDir)
	put("geocoder.provider", o.Geocoder)
	put("analysis.division", o.AnalysisDivision)
	put("analysis.timezone", o.Timezone)
	if o.RulesWatch != nil {
		out["rules.watch"] = *o.RulesWatch
	}
	if o.Orb != nil {
		out["analysis.orb"] = *o.Orb
	}
	return out
}

// Overlay answers reads from environment overrides first, then the wrapped store.
type Overlay struct {
	base      driven.ConfigStore
	overrides map[string]any
}

// NewOverlay wraps base with the given overrides.
func NewOverlay(base driven.ConfigStore, o Overrides) *Overlay {
	return &Overlay{base: base, overrides: o.values()}
}

// Overridden reports whether key comes from the environment.
func (o *Overlay) Overridden(key string) bool {
	_, ok := o.overrides[key]
	return ok
}

// Get retrieves a configuration value by key.
func (o *Overlay) Get(key string) (any, bool) {
	if v, ok := o.overrides[key]; ok {
		return v, true
	}
	return o.base.Get(key)
}

// GetString retrieves a string configuration value.
func (o *Overlay) GetString(key string) string {
	if v, ok := o.overrides[key].(string); ok {
		return v
	}
	return o.base.GetString(key)
}

// GetFloat retrieves a floating point configuration value.
func (o *Overlay) GetFloat(key string) float64 {
	if v, ok := o.overrides[key].(float64); ok {
		return v
	}
	return o.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (o *Overlay) GetBool(key string) bool {
	if v, ok := o.overrides[key].(bool); ok {
		return v
	}
	return o.base.GetBool(key)
}

// Set stores a value in the wrapped store.
func (o *Overlay) Set(key string, value any) error {
	return o.base.Set(key, value)
}

// Save persists the wrapped store.
func (o *Overlay) Save() error {
	return o.base.Save()
}

// Load reloads the wrapped store. Overrides are fixed at construction.
func (o *Overlay) Load() error {
	return o.base.Load()
}

// Path returns the wrapped store's file path.
func (o *Overlay) Path() string {
	return o.base.Path()
}
