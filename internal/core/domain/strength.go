package domain

// Strength is the dignity of a planet in its sign.
type Strength string

// Strength classifications, in priority order.
const (
	StrengthExalted     Strength = "exalted"
	StrengthDebilitated Strength = "debilitated"
	StrengthOwnSign     Strength = "own_sign"
	StrengthNeutral     Strength = "neutral"
)

// PlanetStrength is the classification of one planet.
type PlanetStrength struct {
	Planet   Planet   `json:"planet"`
	Sign     Sign     `json:"sign"`
	Strength Strength `json:"strength"`
}

// StrengthTables holds the dignity reference tables.
type StrengthTables struct {
	Exaltation   map[Planet]Sign
	Debilitation map[Planet]Sign
	OwnSigns     map[Planet][]Sign
}

// DefaultStrengthTables returns the classical tables.
// Own signs are derived from sign lordship, so Rahu and Ketu have none.
func DefaultStrengthTables() StrengthTables {
	own := make(map[Planet][]Sign)
	for _, p := range allPlanets {
		if signs := SignsRuledBy(p); len(signs) > 0 {
			own[p] = signs
		}
	}
	return StrengthTables{
		Exaltation: map[Planet]Sign{
			Sun: Aries, Moon: Taurus, Mars: Capricorn, Mercury: Virgo, Jupiter: Cancer,
			Venus: Pisces, Saturn: Libra, Rahu: Taurus, Ketu: Scorpio,
		},
		Debilitation: map[Planet]Sign{
			Sun: Libra, Moon: Scorpio, Mars: Cancer, Mercury: Pisces, Jupiter: Capricorn,
			Venus: Virgo, Saturn: Aries, Rahu: Scorpio, Ketu: Taurus,
		},
		OwnSigns: own,
	}
}

// ExaltationSign returns the exaltation sign of p from the default tables.
func ExaltationSign(p Planet) (Sign, bool) {
	s, ok := DefaultStrengthTables().Exaltation[p]
	return s, ok
}

// DebilitationSign returns the debilitation sign of p from the default tables.
func DebilitationSign(p Planet) (Sign, bool) {
	s, ok := DefaultStrengthTables().Debilitation[p]
	return s, ok
}
