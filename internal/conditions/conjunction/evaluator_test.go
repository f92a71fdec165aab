package conjunction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/graha/internal/core/domain"
)

func chartWithHouse(house int, planets ...domain.Planet) *domain.Chart {
	c := &domain.Chart{Placements: map[domain.Planet]domain.PlanetPlacement{}}
	for i := range c.Houses {
		c.Houses[i] = domain.House{Number: i + 1, Planets: []domain.Planet{}}
	}
	c.Houses[house-1].Planets = planets
	return c
}

func TestEvaluator_Kind(t *testing.T) {
	assert.Equal(t, domain.ConditionConjunction, New().Kind())
}

func TestEvaluator_SupersetSemantics(t *testing.T) {
	cond := domain.Condition{
		Kind:    domain.ConditionConjunction,
		House:   1,
		Planets: []domain.Planet{domain.Mars, domain.Sun},
	}

	tests := []struct {
		name     string
		chart    *domain.Chart
		expected bool
	}{
		{"exact match", chartWithHouse(1, domain.Sun, domain.Mars), true},
		{"extra occupant", chartWithHouse(1, domain.Sun, domain.Moon, domain.Mars), true},
		{"missing Sun", chartWithHouse(1, domain.Mars), false},
		{"missing Mars", chartWithHouse(1, domain.Sun, domain.Moon), false},
		{"planets in another house", chartWithHouse(2, domain.Sun, domain.Mars), false},
		{"nil chart", nil, false},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Evaluate(tt.chart, cond))
		})
	}
}

func TestEvaluator_EmptyPlanetListNeverMatches(t *testing.T) {
	e := New()
	cond := domain.Condition{Kind: domain.ConditionConjunction, House: 1}

	assert.False(t, e.Evaluate(chartWithHouse(1, domain.Sun), cond))
}

func TestEvaluator_Validate(t *testing.T) {
	e := New()

	tests := []struct {
		name    string
		cond    domain.Condition
		wantErr bool
	}{
		{"valid", domain.Condition{House: 5, Planets: []domain.Planet{domain.Jupiter}}, false},
		{"house zero", domain.Condition{House: 0, Planets: []domain.Planet{domain.Jupiter}}, true},
		{"no planets", domain.Condition{House: 5}, true},
		{"unknown planet", domain.Condition{House: 5, Planets: []domain.Planet{"Pluto"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Validate(tt.cond)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, domain.ErrConfiguration))
		})
	}
}
