package domain

import (
	"sort"
	"strings"
)

// Planet is one of the nine grahas used in the analysis.
// The set is closed; external input is canonicalised with ParsePlanet.
type Planet string

// The nine planets, in canonical order.
const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mars    Planet = "Mars"
	Mercury Planet = "Mercury"
	Jupiter Planet = "Jupiter"
	Venus   Planet = "Venus"
	Saturn  Planet = "Saturn"
	Rahu    Planet = "Rahu"
	Ketu    Planet = "Ketu"
)

var allPlanets = []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// AllPlanets returns the nine planets in canonical order.
func AllPlanets() []Planet {
	out := make([]Planet, len(allPlanets))
	copy(out, allPlanets)
	return out
}

// ParsePlanet canonicalises a case-insensitive planet name.
func ParsePlanet(name string) (Planet, error) {
	trimmed := strings.TrimSpace(name)
	for _, p := range allPlanets {
		if strings.EqualFold(string(p), trimmed) {
			return p, nil
		}
	}
	return "", NewError("parse planet", KindValidation, "invalid planet name: %q", name)
}

// ParsePlanets canonicalises a list of names, dropping duplicates.
// The result is in canonical planet order.
func ParsePlanets(names []string) ([]Planet, error) {
	set := make(map[Planet]bool, len(names))
	for _, n := range names {
		p, err := ParsePlanet(n)
		if err != nil {
			return nil, err
		}
		set[p] = true
	}
	return planetSetSlice(set), nil
}

// IsValid returns true if the planet is one of the nine.
func (p Planet) IsValid() bool {
	return p.Index() >= 0
}

// Index returns the canonical position of the planet, or -1.
func (p Planet) Index() int {
	for i, q := range allPlanets {
		if q == p {
			return i
		}
	}
	return -1
}

// String returns the canonical spelling.
func (p Planet) String() string {
	return string(p)
}

// SortPlanets orders planets canonically in place.
func SortPlanets(ps []Planet) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Index() < ps[j].Index() })
}

// PlanetSet is a set of planets.
type PlanetSet map[Planet]bool

// NewPlanetSet builds a set from the given planets.
func NewPlanetSet(ps ...Planet) PlanetSet {
	s := make(PlanetSet, len(ps))
	for _, p := range ps {
		s[p] = true
	}
	return s
}

// Has reports membership.
func (s PlanetSet) Has(p Planet) bool {
	return s[p]
}

// ContainsAll reports whether every planet in ps is in the set.
func (s PlanetSet) ContainsAll(ps []Planet) bool {
	for _, p := range ps {
		if !s[p] {
			return false
		}
	}
	return true
}

// Intersect returns the members of ps that are in the set, in canonical order.
func (s PlanetSet) Intersect(ps []Planet) []Planet {
	out := make(PlanetSet)
	for _, p := range ps {
		if s[p] {
			out[p] = true
		}
	}
	return planetSetSlice(out)
}

// Slice returns the members in canonical order.
func (s PlanetSet) Slice() []Planet {
	return planetSetSlice(s)
}

func planetSetSlice(s map[Planet]bool) []Planet {
	out := make([]Planet, 0, len(s))
	for p, ok := range s {
		if ok {
			out = append(out, p)
		}
	}
	SortPlanets(out)
	return out
}
