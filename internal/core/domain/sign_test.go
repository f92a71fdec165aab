package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignOf_RangeProperty(t *testing.T) {
	for l := 0.0; l < 360; l += 0.25 {
		s := SignOf(l)
		assert.True(t, s.IsValid(), "longitude %v", l)
		assert.Equal(t, Sign(int(math.Floor(l/30))), s, "longitude %v", l)
	}
}

func TestSignOf_Boundaries(t *testing.T) {
	tests := []struct {
		longitude float64
		expected  Sign
	}{
		{0, Aries},
		{29.999, Aries},
		{30, Taurus},
		{359.999, Pisces},
		{360, Aries},
		{-1, Pisces},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SignOf(tt.longitude), "longitude %v", tt.longitude)
	}
}

func TestSign_Lord(t *testing.T) {
	expected := map[Sign]Planet{
		Aries: Mars, Taurus: Venus, Gemini: Mercury, Cancer: Moon,
		Leo: Sun, Virgo: Mercury, Libra: Venus, Scorpio: Mars,
		Sagittarius: Jupiter, Capricorn: Saturn, Aquarius: Saturn, Pisces: Jupiter,
	}

	for _, s := range AllSigns() {
		assert.Equal(t, expected[s], s.Lord(), s.String())
	}
	assert.Equal(t, Planet(""), NoSign.Lord())
}

func TestSign_Add(t *testing.T) {
	assert.Equal(t, Cancer, Aries.Add(3))
	assert.Equal(t, Aries, Pisces.Add(1))
	assert.Equal(t, Pisces, Aries.Add(-1))
	assert.Equal(t, Leo, Leo.Add(24))
}

func TestParseSign(t *testing.T) {
	tests := []struct {
		input    string
		expected Sign
	}{
		{"Aries", Aries},
		{"scorpio", Scorpio},
		{" PISCES ", Pisces},
		{"1", Aries},
		{"12", Pisces},
	}

	for _, tt := range tests {
		s, err := ParseSign(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, s)
	}

	for _, bad := range []string{"", "0", "13", "Ophiuchus"} {
		_, err := ParseSign(bad)
		assert.True(t, errors.Is(err, ErrValidation), bad)
	}
}

func TestSignsRuledBy(t *testing.T) {
	assert.Equal(t, []Sign{Aries, Scorpio}, SignsRuledBy(Mars))
	assert.Equal(t, []Sign{Leo}, SignsRuledBy(Sun))
	assert.Empty(t, SignsRuledBy(Rahu))
	assert.Empty(t, SignsRuledBy(Ketu))
}

func TestSign_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]Sign{"s": Capricorn})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"Capricorn"}`, string(b))

	var out map[string]Sign
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, Capricorn, out["s"])
}

func TestAngularDistance(t *testing.T) {
	assert.InDelta(t, 10, AngularDistance(355, 5), 1e-9)
	assert.InDelta(t, 180, AngularDistance(0, 180), 1e-9)
	assert.InDelta(t, 20, AngularDistance(100, 80), 1e-9)
}
