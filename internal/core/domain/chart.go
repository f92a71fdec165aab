package domain

import (
	"encoding/json"
	"errors"
	"math"
)

// HouseCount is the number of houses in a chart.
const HouseCount = 12

// ChartPosition is a validated planet position: a longitude in [0,360)
// and an independently assigned house in [1,12].
// The zero value is not meaningful; use NewChartPosition.
type ChartPosition struct {
	longitude float64
	house     int
}

// NewChartPosition validates and builds a position.
func NewChartPosition(longitude float64, house int) (ChartPosition, error) {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || longitude < 0 || longitude >= 360 {
		return ChartPosition{}, NewError("chart position", KindValidation, "longitude %v outside [0,360)", longitude)
	}
	if !ValidHouse(house) {
		return ChartPosition{}, NewError("chart position", KindValidation, "house %d outside [1,12]", house)
	}
	return ChartPosition{longitude: longitude, house: house}, nil
}

// Longitude returns the ecliptic longitude in degrees.
func (p ChartPosition) Longitude() float64 { return p.longitude }

// Sign returns the sign derived from the longitude.
func (p ChartPosition) Sign() Sign { return SignOf(p.longitude) }

// DegreeInSign returns the longitude modulo 30.
func (p ChartPosition) DegreeInSign() float64 { return math.Mod(p.longitude, 30) }

// House returns the assigned house number.
func (p ChartPosition) House() int { return p.house }

// ValidHouse reports whether n is a house number.
func ValidHouse(n int) bool {
	return n >= 1 && n <= HouseCount
}

// PlacementSource tags where a planet placement came from.
type PlacementSource string

// Placement sources.
const (
	// PlacementEphemeris means the longitude was computed by the ephemeris provider.
	PlacementEphemeris PlacementSource = "ephemeris"

	// PlacementManual means the house (and optionally sign) was given by the user.
	// Manual placements have no longitude.
	PlacementManual PlacementSource = "manual"

	// PlacementFailed means the provider could not compute the planet.
	PlacementFailed PlacementSource = "failed"
)

// PlanetPlacement is the per-planet result of building a chart.
// Exactly one of a usable position or Err is meaningful; callers must
// go through Position or OK rather than reading numbers off a failed entry.
type PlanetPlacement struct {
	Planet Planet
	Source PlacementSource

	// House is 0 when unknown.
	House int

	// Sign is NoSign when unknown.
	Sign Sign

	// Err is set when Source is PlacementFailed.
	Err error

	pos *ChartPosition
}

// NewEphemerisPlacement builds a computed placement.
func NewEphemerisPlacement(p Planet, pos ChartPosition) PlanetPlacement {
	return PlanetPlacement{
		Planet: p,
		Source: PlacementEphemeris,
		House:  pos.House(),
		Sign:   pos.Sign(),
		pos:    &pos,
	}
}

// NewManualPlacement builds a placement from user-supplied house and sign.
// Pass NoSign when the sign is not known.
func NewManualPlacement(p Planet, house int, sign Sign) PlanetPlacement {
	return PlanetPlacement{Planet: p, Source: PlacementManual, House: house, Sign: sign}
}

// FailedPlacement marks a planet whose position could not be computed.
func FailedPlacement(p Planet, err error) PlanetPlacement {
	if err == nil {
		err = ErrEphemeris
	}
	return PlanetPlacement{Planet: p, Source: PlacementFailed, Sign: NoSign, Err: err}
}

// Position returns the computed position, if any.
func (pp PlanetPlacement) Position() (ChartPosition, bool) {
	if pp.pos == nil || pp.Err != nil {
		return ChartPosition{}, false
	}
	return *pp.pos, true
}

// OK reports whether the placement has a usable house.
func (pp PlanetPlacement) OK() bool {
	return pp.Err == nil && ValidHouse(pp.House)
}

// HasSign reports whether the placement has a usable sign.
func (pp PlanetPlacement) HasSign() bool {
	return pp.Err == nil && pp.Sign.IsValid()
}

type placementJSON struct {
	Planet       Planet          `json:"planet"`
	Source       PlacementSource `json:"source"`
	House        int             `json:"house"`
	Sign         *Sign           `json:"sign"`
	Longitude    *float64        `json:"longitude"`
	DegreeInSign *float64        `json:"degree_in_sign"`
	Error        *string         `json:"error"`
}

// MarshalJSON emits every field; unknown values are null.
func (pp PlanetPlacement) MarshalJSON() ([]byte, error) {
	out := placementJSON{Planet: pp.Planet, Source: pp.Source, House: pp.House}
	if pp.Sign.IsValid() {
		s := pp.Sign
		out.Sign = &s
	}
	if pos, ok := pp.Position(); ok {
		lon, deg := pos.Longitude(), pos.DegreeInSign()
		out.Longitude, out.DegreeInSign = &lon, &deg
	}
	if pp.Err != nil {
		msg := pp.Err.Error()
		out.Error = &msg
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a placement written by MarshalJSON.
func (pp *PlanetPlacement) UnmarshalJSON(b []byte) error {
	var in placementJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*pp = PlanetPlacement{Planet: in.Planet, Source: in.Source, House: in.House, Sign: NoSign}
	if in.Sign != nil {
		pp.Sign = *in.Sign
	}
	if in.Error != nil {
		pp.Err = errors.New(*in.Error)
		return nil
	}
	if in.Longitude != nil {
		pos, err := NewChartPosition(*in.Longitude, in.House)
		if err != nil {
			return err
		}
		pp.pos = &pos
	}
	return nil
}

// Cusp is the computed start of a house.
type Cusp struct {
	House  int     `json:"house"`
	Sign   Sign    `json:"sign"`
	Degree float64 `json:"degree"`
	Err    string  `json:"error,omitempty"`
}

// OK reports whether the cusp was computed.
func (c Cusp) OK() bool {
	return c.Err == "" && c.Sign.IsValid()
}

// House is one of the twelve houses of a chart.
type House struct {
	Number int `json:"number"`

	// Lord is empty when the cusp sign is unknown.
	Lord Planet `json:"lord"`

	// Planets are the occupants in canonical order, never duplicated.
	Planets []Planet `json:"planets"`
}

// HasLord reports whether the house lord is known.
func (h House) HasLord() bool {
	return h.Lord != ""
}

// Chart is the canonical, immutable chart representation built by the position model.
type Chart struct {
	Birth       *BirthData
	Coordinates *Coordinates
	Source      PlacementSource
	Placements  map[Planet]PlanetPlacement
	Cusps       []Cusp
	Houses      [HouseCount]House
}

// Placement returns the placement of a planet.
func (c *Chart) Placement(p Planet) (PlanetPlacement, bool) {
	pp, ok := c.Placements[p]
	return pp, ok
}

// House returns house n (1-based).
func (c *Chart) House(n int) House {
	if !ValidHouse(n) {
		return House{Number: n}
	}
	return c.Houses[n-1]
}

// PlanetsInHouse returns the occupants of house n.
func (c *Chart) PlanetsInHouse(n int) []Planet {
	return c.House(n).Planets
}

// Occupancy returns a house-number to occupants mapping for every house.
func (c *Chart) Occupancy() map[int][]Planet {
	out := make(map[int][]Planet, HouseCount)
	for _, h := range c.Houses {
		out[h.Number] = h.Planets
	}
	return out
}

// SignOf returns a planet's sign if known.
func (c *Chart) SignOf(p Planet) (Sign, bool) {
	pp, ok := c.Placements[p]
	if !ok || !pp.HasSign() {
		return NoSign, false
	}
	return pp.Sign, true
}

// OrderedPlacements returns placements in canonical planet order.
func (c *Chart) OrderedPlacements() []PlanetPlacement {
	out := make([]PlanetPlacement, 0, len(c.Placements))
	for _, p := range allPlanets {
		if pp, ok := c.Placements[p]; ok {
			out = append(out, pp)
		}
	}
	return out
}

// FailedPlanets returns planets whose placement failed, in canonical order.
func (c *Chart) FailedPlanets() []Planet {
	var out []Planet
	for _, pp := range c.OrderedPlacements() {
		if pp.Err != nil {
			out = append(out, pp.Planet)
		}
	}
	return out
}

// HouseLords returns the lords of houses 1..12 in order.
func (c *Chart) HouseLords() []Planet {
	out := make([]Planet, HouseCount)
	for i, h := range c.Houses {
		out[i] = h.Lord
	}
	return out
}
