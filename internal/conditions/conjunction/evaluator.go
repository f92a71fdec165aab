// Package conjunction evaluates house conjunction conditions: every listed
// planet must occupy the given house. Extra occupants are irrelevant.
package conjunction

import (
	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ConditionEvaluator = (*Evaluator)(nil)

// Evaluator implements the conjunction condition kind.
type Evaluator struct{}

// New creates a conjunction evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Kind returns domain.ConditionConjunction.
func (e *Evaluator) Kind() domain.ConditionKind {
	return domain.ConditionConjunction
}

// Validate requires a house in 1..12 and at least one known planet.
func (e *Evaluator) Validate(cond domain.Condition) error {
	if !domain.ValidHouse(cond.House) {
		return domain.NewError("validate conjunction", domain.KindConfiguration,
			"house %d outside [1,12]", cond.House)
	}
	if len(cond.Planets) == 0 {
		return domain.NewError("validate conjunction", domain.KindConfiguration,
			"house %d: no planets listed", cond.House)
	}
	for _, p := range cond.Planets {
		if !p.IsValid() {
			return domain.NewError("validate conjunction", domain.KindConfiguration,
				"unknown planet %q", p)
		}
	}
	return nil
}

// Evaluate reports whether the house occupants are a superset of the listed planets.
func (e *Evaluator) Evaluate(chart *domain.Chart, cond domain.Condition) bool {
	if chart == nil || !domain.ValidHouse(cond.House) || len(cond.Planets) == 0 {
		return false
	}
	occupants := domain.NewPlanetSet(chart.PlanetsInHouse(cond.House)...)
	return occupants.ContainsAll(cond.Planets)
}
