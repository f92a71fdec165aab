package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Planet
	}{
		{name: "canonical", input: "Sun", expected: Sun},
		{name: "lower case", input: "jupiter", expected: Jupiter},
		{name: "upper case", input: "RAHU", expected: Rahu},
		{name: "padded", input: "  Ketu ", expected: Ketu},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePlanet(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestParsePlanet_Invalid(t *testing.T) {
	for _, input := range []string{"", "Pluto", "Su n"} {
		_, err := ParsePlanet(input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrValidation))
	}
}

func TestParsePlanets_DeduplicatesAndOrders(t *testing.T) {
	ps, err := ParsePlanets([]string{"saturn", "Sun", "SUN", "mars"})
	require.NoError(t, err)
	assert.Equal(t, []Planet{Sun, Mars, Saturn}, ps)

	_, err = ParsePlanets([]string{"Sun", "Vulcan"})
	assert.Error(t, err)
}

func TestAllPlanets_ReturnsCopy(t *testing.T) {
	ps := AllPlanets()
	require.Len(t, ps, 9)
	ps[0] = Ketu
	assert.Equal(t, Sun, AllPlanets()[0])
}

func TestPlanet_IsValid(t *testing.T) {
	for _, p := range AllPlanets() {
		assert.True(t, p.IsValid(), p)
	}
	assert.False(t, Planet("sun").IsValid())
	assert.False(t, Planet("").IsValid())
}

func TestPlanetSet(t *testing.T) {
	s := NewPlanetSet(Mars, Sun, Moon)

	assert.True(t, s.Has(Mars))
	assert.False(t, s.Has(Venus))
	assert.True(t, s.ContainsAll([]Planet{Sun, Mars}))
	assert.False(t, s.ContainsAll([]Planet{Sun, Venus}))
	assert.True(t, s.ContainsAll(nil))
	assert.Equal(t, []Planet{Sun, Mars}, s.Intersect([]Planet{Mars, Venus, Sun}))
	assert.Equal(t, []Planet{Sun, Moon, Mars}, s.Slice())
}
