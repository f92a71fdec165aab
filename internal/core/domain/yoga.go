package domain

// ConditionKind selects the evaluator for a yoga condition.
type ConditionKind string

// ConditionConjunction requires all listed planets to occupy one house.
const ConditionConjunction ConditionKind = "conjunction"

// Condition is one alternative of a yoga definition.
type Condition struct {
	Kind    ConditionKind `json:"kind" yaml:"kind"`
	House   int           `json:"house" yaml:"house"`
	Planets []Planet      `json:"planets" yaml:"planets"`
}

// YogaDefinition is a named pattern; it holds when any condition holds.
type YogaDefinition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Conditions  []Condition `json:"conditions"`
}

// DetectedYoga is a definition that matched a chart.
type DetectedYoga struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Condition is the index of the first satisfied condition.
	Condition int `json:"condition"`
	House     int `json:"house"`
}
