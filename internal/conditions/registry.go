// Package conditions holds the yoga condition evaluators and the registry
// the yoga detector dispatches through.
package conditions

import (
	"sort"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ConditionRegistry = (*Registry)(nil)

// Registry maps condition kinds to their evaluators.
// It is populated during initialisation and read-only afterwards.
type Registry struct {
	evaluators map[domain.ConditionKind]driven.ConditionEvaluator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		evaluators: make(map[domain.ConditionKind]driven.ConditionEvaluator),
	}
}

// Register adds an evaluator under its kind, replacing any previous one.
func (r *Registry) Register(e driven.ConditionEvaluator) {
	r.evaluators[e.Kind()] = e
}

// Get returns the evaluator for a kind.
func (r *Registry) Get(kind domain.ConditionKind) (driven.ConditionEvaluator, bool) {
	e, ok := r.evaluators[kind]
	return e, ok
}

// Has returns true if an evaluator for the kind is registered.
func (r *Registry) Has(kind domain.ConditionKind) bool {
	_, ok := r.evaluators[kind]
	return ok
}

// Kinds returns all registered kinds, sorted.
func (r *Registry) Kinds() []domain.ConditionKind {
	kinds := make([]domain.ConditionKind, 0, len(r.evaluators))
	for k := range r.evaluators {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
