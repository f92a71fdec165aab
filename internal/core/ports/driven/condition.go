package driven

import "github.com/custodia-labs/graha/internal/core/domain"

// ConditionEvaluator decides one kind of yoga condition against a chart.
// New condition kinds are added by registering another evaluator.
type ConditionEvaluator interface {
	// Kind returns the condition kind this evaluator handles.
	Kind() domain.ConditionKind

	// Validate checks a condition's parameters when reference data is loaded.
	Validate(cond domain.Condition) error

	// Evaluate reports whether the chart satisfies the condition.
	Evaluate(chart *domain.Chart, cond domain.Condition) bool
}

// ConditionRegistry looks up evaluators by kind.
type ConditionRegistry interface {
	Get(kind domain.ConditionKind) (ConditionEvaluator, bool)
	Kinds() []domain.ConditionKind
}
