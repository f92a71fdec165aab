package services

import (
	"math"
	"sync"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// DivisionalCalculator derives varga charts by uniform slicing of each sign.
// Each 30° sign is cut into n equal parts and a longitude is snapped down to
// the start of its part.
type DivisionalCalculator struct{}

// NewDivisionalCalculator creates a calculator.
func NewDivisionalCalculator() *DivisionalCalculator {
	return &DivisionalCalculator{}
}

// Longitude returns the divisional longitude for a natal longitude.
func (c *DivisionalCalculator) Longitude(natal float64, code domain.DivisionCode) (float64, error) {
	n := code.Parts()
	if n == 0 {
		return 0, domain.NewError("divisional longitude", domain.KindConfiguration, "unsupported division code %q", code)
	}
	natal = domain.NormalizeLongitude(natal)
	part := 30 / float64(n)
	return math.Mod(math.Floor(natal/part)*part, 360), nil
}

// Compute derives the divisional chart for every placement of a chart.
// Planets without a longitude carry an error entry.
func (c *DivisionalCalculator) Compute(chart *domain.Chart, code domain.DivisionCode) (*domain.DivisionalChart, error) {
	if code.Parts() == 0 {
		return nil, domain.NewError("divisional chart", domain.KindConfiguration, "unsupported division code %q", code)
	}

	out := &domain.DivisionalChart{
		Code:      code,
		Parts:     code.Parts(),
		Positions: make([]domain.DivisionalPosition, 0, len(chart.Placements)),
	}
	for _, pp := range chart.OrderedPlacements() {
		pos, ok := pp.Position()
		if !ok {
			err := pp.Err
			if err == nil {
				err = domain.NewError("divisional chart", domain.KindEphemeris, "%s has no longitude", pp.Planet)
			}
			out.Positions = append(out.Positions, domain.DivisionalPosition{Planet: pp.Planet, Sign: domain.NoSign, Err: err})
			continue
		}

		lon, err := c.Longitude(pos.Longitude(), code)
		if err != nil {
			return nil, err
		}
		out.Positions = append(out.Positions, domain.DivisionalPosition{
			Planet:       pp.Planet,
			Longitude:    lon,
			Sign:         domain.SignOf(lon),
			DegreeInSign: math.Mod(lon, 30),
		})
	}
	return out, nil
}

// ForChart returns a per-chart cache of divisional charts.
func (c *DivisionalCalculator) ForChart(chart *domain.Chart) *DivisionalCache {
	return &DivisionalCache{
		calc:   c,
		chart:  chart,
		charts: make(map[domain.DivisionCode]*domain.DivisionalChart),
	}
}

// DivisionalCache memoises divisional charts of one chart by code.
// Safe for concurrent use.
type DivisionalCache struct {
	calc  *DivisionalCalculator
	chart *domain.Chart

	mu     sync.Mutex
	charts map[domain.DivisionCode]*domain.DivisionalChart
}

// Get returns the divisional chart for code, computing it once.
func (d *DivisionalCache) Get(code domain.DivisionCode) (*domain.DivisionalChart, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if dc, ok := d.charts[code]; ok {
		return dc, nil
	}
	dc, err := d.calc.Compute(d.chart, code)
	if err != nil {
		return nil, err
	}
	d.charts[code] = dc
	return dc, nil
}
