package driven

import "github.com/custodia-labs/graha/internal/core/domain"

// RuleStore serves the current reference data snapshot.
// The returned value is shared and must not be modified.
type RuleStore interface {
	Snapshot() *domain.ReferenceData
}

// RuleLoader reads and validates reference data from a directory.
// An empty dir loads the built-in data.
type RuleLoader interface {
	Load(dir string) (*domain.ReferenceData, error)
}
