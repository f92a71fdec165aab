package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graha/internal/conditions"
	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/logger"
)

// countingEvaluator holds for one house and counts evaluations.
type countingEvaluator struct {
	holdsFor int
	calls    int
}

func (c *countingEvaluator) Kind() domain.ConditionKind        { return "counting" }
func (c *countingEvaluator) Validate(_ domain.Condition) error { return nil }
func (c *countingEvaluator) Evaluate(_ *domain.Chart, cond domain.Condition) bool {
	c.calls++
	return cond.House == c.holdsFor
}

func conj(house int, planets ...domain.Planet) domain.Condition {
	return domain.Condition{Kind: domain.ConditionConjunction, House: house, Planets: planets}
}

func TestYogaDetector_Detect(t *testing.T) {
	detector := NewYogaDetector(conditions.NewDefaultRegistry(), logger.Nop())

	got := detector.Detect(sampleChart(t), sampleReference().Yogas)

	require.Len(t, got, 1)
	assert.Equal(t, domain.DetectedYoga{
		Name:        "Budha-Aditya Yoga",
		Description: "Sun and Mercury together.",
		Condition:   0,
		House:       1,
	}, got[0])
}

func TestYogaDetector_Detect_Superset(t *testing.T) {
	detector := NewYogaDetector(conditions.NewDefaultRegistry(), logger.Nop())
	chart := manualChart(t, domain.Moon, map[int][]domain.Planet{
		4: {domain.Saturn, domain.Moon, domain.Jupiter},
	})

	got := detector.Detect(chart, sampleReference().Yogas)

	require.Len(t, got, 1)
	assert.Equal(t, "Gaja-Kesari Yoga", got[0].Name)
	assert.Equal(t, 1, got[0].Condition)
	assert.Equal(t, 4, got[0].House)
}

func TestYogaDetector_Detect_LibraryOrder(t *testing.T) {
	detector := NewYogaDetector(conditions.NewDefaultRegistry(), logger.Nop())
	chart := manualChart(t, domain.Sun, map[int][]domain.Planet{
		2: {domain.Sun, domain.Mercury},
		1: {domain.Jupiter, domain.Moon},
	})
	defs := []domain.YogaDefinition{
		{Name: "B", Conditions: []domain.Condition{conj(2, domain.Sun, domain.Mercury)}},
		{Name: "A", Conditions: []domain.Condition{conj(1, domain.Jupiter, domain.Moon)}},
		{Name: "C", Conditions: []domain.Condition{conj(3, domain.Mars)}},
	}

	got := detector.Detect(chart, defs)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)

	assert.NotNil(t, detector.Detect(chart, nil))
	assert.Empty(t, detector.Detect(chart, nil))
}

func TestYogaDetector_Detect_ShortCircuits(t *testing.T) {
	eval := &countingEvaluator{holdsFor: 2}
	registry := conditions.NewRegistry()
	registry.Register(eval)
	detector := NewYogaDetector(registry, logger.Nop())

	defs := []domain.YogaDefinition{{
		Name: "Counted",
		Conditions: []domain.Condition{
			{Kind: "counting", House: 1},
			{Kind: "counting", House: 2},
			{Kind: "counting", House: 3},
		},
	}}

	got := detector.Detect(&domain.Chart{}, defs)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Condition)
	assert.Equal(t, 2, eval.calls, "conditions after the first match are not evaluated")
}

func TestYogaDetector_Detect_UnknownKindSkipped(t *testing.T) {
	detector := NewYogaDetector(conditions.NewDefaultRegistry(), logger.Nop())
	chart := manualChart(t, domain.Sun, map[int][]domain.Planet{5: {domain.Mars}})

	got := detector.Detect(chart, []domain.YogaDefinition{{
		Name: "Mixed",
		Conditions: []domain.Condition{
			{Kind: "aspect", House: 1, Planets: []domain.Planet{domain.Mars}},
			conj(5, domain.Mars),
		},
	}})

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Condition)
}

func TestValidateYogaDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []domain.YogaDefinition
	}{
		{name: "missing name", defs: []domain.YogaDefinition{{Conditions: []domain.Condition{conj(1, domain.Sun)}}}},
		{name: "duplicate", defs: []domain.YogaDefinition{
			{Name: "X", Conditions: []domain.Condition{conj(1, domain.Sun)}},
			{Name: "X", Conditions: []domain.Condition{conj(2, domain.Sun)}},
		}},
		{name: "no conditions", defs: []domain.YogaDefinition{{Name: "Empty"}}},
		{name: "unknown kind", defs: []domain.YogaDefinition{{Name: "K", Conditions: []domain.Condition{{Kind: "trine", House: 1, Planets: []domain.Planet{domain.Sun}}}}}},
		{name: "house out of range", defs: []domain.YogaDefinition{{Name: "H", Conditions: []domain.Condition{conj(0, domain.Sun)}}}},
		{name: "no planets", defs: []domain.YogaDefinition{{Name: "P", Conditions: []domain.Condition{conj(4)}}}},
	}

	registry := conditions.NewDefaultRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYogaDefinitions(registry, tt.defs)
			assert.True(t, errors.Is(err, domain.ErrConfiguration), "got %v", err)
		})
	}

	assert.NoError(t, NewYogaDetector(registry, logger.Nop()).ValidateDefinitions(sampleReference().Yogas))
}
