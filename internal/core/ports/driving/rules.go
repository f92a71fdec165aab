package driving

import "github.com/custodia-labs/graha/internal/core/domain"

// RulesService exposes the loaded reference data.
type RulesService interface {
	// Current returns the active snapshot.
	Current() *domain.ReferenceData

	// Validate loads a rules directory without activating it.
	// An empty dir validates the built-in rules.
	Validate(dir string) (*domain.ReferenceData, error)
}
