package services

import (
	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
	"github.com/custodia-labs/graha/internal/logger"
)

// YogaDetector matches charts against yoga definitions. Conditions are
// dispatched to evaluators by kind, so the detection loop never changes
// when new kinds are registered.
type YogaDetector struct {
	registry driven.ConditionRegistry
	log      *logger.Logger
}

// NewYogaDetector creates a detector backed by a condition registry.
func NewYogaDetector(registry driven.ConditionRegistry, log *logger.Logger) *YogaDetector {
	return &YogaDetector{registry: registry, log: log}
}

// ValidateDefinitions checks names and conditions. Unknown condition kinds
// are a ConfigurationError.
func (d *YogaDetector) ValidateDefinitions(defs []domain.YogaDefinition) error {
	return ValidateYogaDefinitions(d.registry, defs)
}

// ValidateYogaDefinitions checks yoga definitions against a registry.
func ValidateYogaDefinitions(registry driven.ConditionRegistry, defs []domain.YogaDefinition) error {
	const op = "validate yogas"

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return domain.NewError(op, domain.KindConfiguration, "yoga without a name")
		}
		if seen[def.Name] {
			return domain.NewError(op, domain.KindConfiguration, "duplicate yoga %q", def.Name)
		}
		seen[def.Name] = true

		if len(def.Conditions) == 0 {
			return domain.NewError(op, domain.KindConfiguration, "yoga %q has no conditions", def.Name)
		}
		for i, cond := range def.Conditions {
			eval, ok := registry.Get(cond.Kind)
			if !ok {
				return domain.NewError(op, domain.KindConfiguration,
					"yoga %q condition %d: unknown kind %q", def.Name, i+1, cond.Kind)
			}
			if err := eval.Validate(cond); err != nil {
				return domain.NewError(op, domain.KindConfiguration, "yoga %q condition %d: %v", def.Name, i+1, err)
			}
		}
	}
	return nil
}

// Detect returns the satisfied definitions in library order. A definition is
// satisfied by its first satisfied condition; later conditions are not evaluated.
func (d *YogaDetector) Detect(chart *domain.Chart, defs []domain.YogaDefinition) []domain.DetectedYoga {
	out := make([]domain.DetectedYoga, 0)
	for _, def := range defs {
		for i, cond := range def.Conditions {
			eval, ok := d.registry.Get(cond.Kind)
			if !ok {
				d.log.Warn("yoga %q: skipping condition with unknown kind %q", def.Name, cond.Kind)
				continue
			}
			if eval.Evaluate(chart, cond) {
				d.log.Debug("yoga %q matched condition %d", def.Name, i+1)
				out = append(out, domain.DetectedYoga{
					Name:        def.Name,
					Description: def.Description,
					Condition:   i,
					House:       cond.House,
				})
				break
			}
		}
	}
	return out
}
