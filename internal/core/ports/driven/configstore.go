package driven

// ConfigStore reads and writes settings by dot-separated key, such as
// "llm.provider" or "analysis.orb". Typed getters return the zero value when
// a key is missing or holds another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string

	// GetFloat also accepts integer values.
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set changes the in-memory value. Save persists it.
	Set(key string, value any) error
	Save() error

	// Load replaces the in-memory values with the stored ones.
	Load() error

	// Path identifies the backing storage, such as the TOML file.
	Path() string
}
