package domain

import "sort"

// OppositionOffset is the aspect every planet casts.
const OppositionOffset = 7

// DefaultOrb is the degree tolerance for conjunction and opposition checks.
const DefaultOrb = 6.0

var specialAspects = map[Planet][]int{
	Mars:    {4, 8},
	Jupiter: {5, 9},
	Rahu:    {5, 9},
	Ketu:    {5, 9},
	Saturn:  {3, 10},
}

// AspectOffsets returns the aspect offsets of a planet in ascending order.
// Every planet has the 7th; Mars, Jupiter, Rahu, Ketu and Saturn add special aspects.
func AspectOffsets(p Planet) []int {
	out := []int{OppositionOffset}
	out = append(out, specialAspects[p]...)
	sort.Ints(out)
	return out
}

// AspectModel identifies how an aspect relation was derived.
type AspectModel string

// Aspect models.
const (
	// AspectBySign compares the sign distance between two planets.
	AspectBySign AspectModel = "sign"

	// AspectByHouse counts houses from the planet's own house.
	AspectByHouse AspectModel = "house"
)

// AspectRelation is one evaluated aspect. Exactly one of TargetPlanet
// and TargetHouse is set.
type AspectRelation struct {
	Model        AspectModel `json:"model"`
	Source       Planet      `json:"source"`
	TargetPlanet Planet      `json:"target_planet,omitempty"`
	TargetHouse  int         `json:"target_house,omitempty"`

	// Offset is the matching offset, or the observed distance when not satisfied.
	Offset    int  `json:"offset"`
	Satisfied bool `json:"satisfied"`
}

// HouseAspect lists the houses a planet aspects from its own house.
type HouseAspect struct {
	Planet Planet `json:"planet"`
	House  int    `json:"house"`
	Houses []int  `json:"aspected_houses"`
}

// DegreeAspectKind distinguishes degree-level aspects.
type DegreeAspectKind string

// Degree aspect kinds.
const (
	DegreeConjunction DegreeAspectKind = "conjunction"
	DegreeOpposition  DegreeAspectKind = "opposition"
)

// DegreeAspect is a conjunction or opposition within the orb.
type DegreeAspect struct {
	Kind DegreeAspectKind `json:"kind"`
	A    Planet           `json:"a"`
	B    Planet           `json:"b"`

	// Deviation is the distance from the exact angle in degrees.
	Deviation float64 `json:"deviation"`
}
