package services

import (
	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
	"github.com/custodia-labs/graha/internal/core/ports/driving"
)

// Ensure RulesService implements the interface.
var _ driving.RulesService = (*RulesService)(nil)

// RulesService exposes the active reference data and validates rule directories.
type RulesService struct {
	store  driven.RuleStore
	loader driven.RuleLoader
}

// NewRulesService creates a rules service.
func NewRulesService(store driven.RuleStore, loader driven.RuleLoader) *RulesService {
	return &RulesService{store: store, loader: loader}
}

// Current returns the active snapshot.
func (s *RulesService) Current() *domain.ReferenceData {
	return s.store.Snapshot()
}

// Validate loads dir without activating it.
func (s *RulesService) Validate(dir string) (*domain.ReferenceData, error) {
	return s.loader.Load(dir)
}
