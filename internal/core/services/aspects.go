package services

import (
	"math"
	"sort"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// AspectEngine computes aspects with two table-driven models: sign distance
// between planets, and house counting from a planet's own house.
type AspectEngine struct {
	orb float64
}

// NewAspectEngine creates an engine. A non-positive orb selects domain.DefaultOrb.
func NewAspectEngine(orb float64) *AspectEngine {
	if orb <= 0 || math.IsNaN(orb) {
		orb = domain.DefaultOrb
	}
	return &AspectEngine{orb: orb}
}

// Orb returns the degree tolerance.
func (e *AspectEngine) Orb() float64 {
	return e.orb
}

// SignAspect evaluates whether p1 in s1 aspects p2 in s2.
// The distance (s2-s1) mod 12 must equal one of p1's offsets mod 12.
func (e *AspectEngine) SignAspect(p1 domain.Planet, s1 domain.Sign, p2 domain.Planet, s2 domain.Sign) domain.AspectRelation {
	distance := ((int(s2)-int(s1))%12 + 12) % 12
	rel := domain.AspectRelation{
		Model:        domain.AspectBySign,
		Source:       p1,
		TargetPlanet: p2,
		Offset:       distance,
	}
	for _, o := range domain.AspectOffsets(p1) {
		if distance == o%12 {
			rel.Offset = o
			rel.Satisfied = true
			break
		}
	}
	return rel
}

// PlanetAspects evaluates every ordered pair of distinct planets with known signs.
// Planets without a sign are skipped.
func (e *AspectEngine) PlanetAspects(chart *domain.Chart) []domain.AspectRelation {
	placements := chart.OrderedPlacements()
	out := make([]domain.AspectRelation, 0)
	for _, a := range placements {
		if !a.HasSign() {
			continue
		}
		for _, b := range placements {
			if a.Planet == b.Planet || !b.HasSign() {
				continue
			}
			out = append(out, e.SignAspect(a.Planet, a.Sign, b.Planet, b.Sign))
		}
	}
	return out
}

// SatisfiedAspects filters relations down to the satisfied ones.
func SatisfiedAspects(rels []domain.AspectRelation) []domain.AspectRelation {
	out := make([]domain.AspectRelation, 0, len(rels))
	for _, r := range rels {
		if r.Satisfied {
			out = append(out, r)
		}
	}
	return out
}

// AspectedHouses returns the houses p aspects from house, ascending.
// Counting is inclusive: the 4th house from house 10 is house 1.
func (e *AspectEngine) AspectedHouses(p domain.Planet, house int) ([]int, error) {
	if !p.IsValid() {
		return nil, domain.NewError("aspected houses", domain.KindValidation, "invalid planet %q", p)
	}
	if !domain.ValidHouse(house) {
		return nil, domain.NewError("aspected houses", domain.KindValidation, "house %d outside [1,12]", house)
	}

	seen := make(map[int]bool)
	out := make([]int, 0, 3)
	for _, o := range domain.AspectOffsets(p) {
		h := ((house-1)+(o-1))%12 + 1
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	sort.Ints(out)
	return out, nil
}

// HouseAspects lists the aspected houses of every placed planet.
func (e *AspectEngine) HouseAspects(chart *domain.Chart) []domain.HouseAspect {
	out := make([]domain.HouseAspect, 0, len(chart.Placements))
	for _, pp := range chart.OrderedPlacements() {
		if !pp.OK() {
			continue
		}
		houses, err := e.AspectedHouses(pp.Planet, pp.House)
		if err != nil {
			continue
		}
		out = append(out, domain.HouseAspect{Planet: pp.Planet, House: pp.House, Houses: houses})
	}
	return out
}

// WithinOrb reports whether two longitudes are separated by target degrees
// within the orb, returning the deviation from the exact angle.
func (e *AspectEngine) WithinOrb(a, b, target float64) (float64, bool) {
	dev := math.Abs(domain.AngularDistance(a, b) - target)
	return dev, dev <= e.orb
}

// DegreeAspects finds conjunctions and oppositions within the orb between
// planets that have a computed longitude. Each unordered pair appears once.
func (e *AspectEngine) DegreeAspects(chart *domain.Chart) []domain.DegreeAspect {
	type located struct {
		planet domain.Planet
		lon    float64
	}
	var ps []located
	for _, pp := range chart.OrderedPlacements() {
		if pos, ok := pp.Position(); ok {
			ps = append(ps, located{pp.Planet, pos.Longitude()})
		}
	}

	out := make([]domain.DegreeAspect, 0)
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if dev, ok := e.WithinOrb(ps[i].lon, ps[j].lon, 0); ok {
				out = append(out, domain.DegreeAspect{Kind: domain.DegreeConjunction, A: ps[i].planet, B: ps[j].planet, Deviation: dev})
				continue
			}
			if dev, ok := e.WithinOrb(ps[i].lon, ps[j].lon, 180); ok {
				out = append(out, domain.DegreeAspect{Kind: domain.DegreeOpposition, A: ps[i].planet, B: ps[j].planet, Deviation: dev})
			}
		}
	}
	return out
}
