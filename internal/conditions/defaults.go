package conditions

import "github.com/custodia-labs/graha/internal/conditions/conjunction"

// RegisterDefaults registers all built-in evaluators with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(conjunction.New())
}

// NewDefaultRegistry returns a registry with the built-in evaluators.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
