package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/logger"
)

// PositionModel normalises ephemeris output or manual input into a domain.Chart.
type PositionModel struct {
	log *logger.Logger
}

// NewPositionModel creates a position model.
func NewPositionModel(log *logger.Logger) *PositionModel {
	return &PositionModel{log: log}
}

// AssignHouseLords derives the lords of houses 1..12 from the first-house lord.
// The lagna is the first sign (in zodiac order) ruled by firstLord; house i is
// ruled by the lord of the sign i places further on.
func (m *PositionModel) AssignHouseLords(firstLord domain.Planet) ([]domain.Planet, error) {
	const op = "assign house lords"

	if !firstLord.IsValid() {
		return nil, domain.NewError(op, domain.KindValidation, "invalid planet %q", firstLord)
	}
	signs := domain.SignsRuledBy(firstLord)
	if len(signs) == 0 {
		return nil, domain.NewError(op, domain.KindValidation, "%s rules no sign", firstLord)
	}

	lagna := signs[0]
	lords := make([]domain.Planet, domain.HouseCount)
	for i := range lords {
		lords[i] = lagna.Add(i).Lord()
	}
	return lords, nil
}

// FromEphemeris builds a chart from provider output. Per-planet and per-cusp
// failures are tagged on the chart and never abort the build.
func (m *PositionModel) FromEphemeris(
	birth domain.BirthData, coords domain.Coordinates, result *domain.EphemerisResult,
) (*domain.Chart, error) {
	if result == nil {
		return nil, fmt.Errorf("build chart: %w", domain.ErrEphemerisUnavailable)
	}

	m.log.Section("Positions")

	chart := &domain.Chart{
		Birth:       &birth,
		Coordinates: &coords,
		Source:      domain.PlacementEphemeris,
		Placements:  make(map[domain.Planet]domain.PlanetPlacement, 9),
		Cusps:       make([]domain.Cusp, 0, domain.HouseCount),
	}

	for _, p := range domain.AllPlanets() {
		chart.Placements[p] = m.placementFromEntry(p, result.Planets)
	}

	var lords [domain.HouseCount]domain.Planet
	for h := 1; h <= domain.HouseCount; h++ {
		entry, ok := result.Cusps[h]
		if !ok || entry.Err != nil {
			msg := "cusp not reported"
			if ok {
				msg = entry.Err.Error()
			}
			m.log.Warn("house %d cusp unavailable: %s", h, msg)
			chart.Cusps = append(chart.Cusps, domain.Cusp{House: h, Sign: domain.NoSign, Err: msg})
			continue
		}
		deg := domain.NormalizeLongitude(entry.Degree)
		sign := domain.SignOf(deg)
		chart.Cusps = append(chart.Cusps, domain.Cusp{House: h, Sign: sign, Degree: deg})
		lords[h-1] = sign.Lord()
	}

	fillHouses(chart, lords)
	return chart, nil
}

func (m *PositionModel) placementFromEntry(
	p domain.Planet, entries map[domain.Planet]domain.EphemerisEntry,
) domain.PlanetPlacement {
	entry, ok := entries[p]
	if !ok {
		m.log.Warn("%s: no position reported", p)
		return domain.FailedPlacement(p, domain.NewError("ephemeris", domain.KindEphemeris, "%s: no position reported", p))
	}
	if entry.Err != nil {
		m.log.Warn("%s: %v", p, entry.Err)
		if errors.Is(entry.Err, domain.ErrEphemeris) {
			return domain.FailedPlacement(p, entry.Err)
		}
		return domain.FailedPlacement(p, &domain.OpError{Op: "ephemeris", Kind: domain.KindEphemeris, Err: entry.Err})
	}

	pos, err := domain.NewChartPosition(domain.NormalizeLongitude(entry.Longitude), entry.House)
	if err != nil {
		m.log.Warn("%s: rejected position: %v", p, err)
		return domain.FailedPlacement(p, &domain.OpError{Op: "ephemeris", Kind: domain.KindEphemeris, Err: err})
	}

	m.log.Debug("%s: %.2f° %s house %d", p, pos.Longitude(), pos.Sign(), pos.House())
	return domain.NewEphemerisPlacement(p, pos)
}

// FromManual builds a chart from a lagna lord and hand-assigned houses.
// Manual placements carry no longitude.
func (m *PositionModel) FromManual(birth *domain.BirthData, input domain.ManualChart) (*domain.Chart, error) {
	lordList, err := m.AssignHouseLords(input.LagnaLord)
	if err != nil {
		return nil, err
	}

	chart := &domain.Chart{
		Birth:      birth,
		Source:     domain.PlacementManual,
		Placements: make(map[domain.Planet]domain.PlanetPlacement),
		Cusps:      []domain.Cusp{},
	}

	for house, planets := range input.Houses {
		if !domain.ValidHouse(house) {
			return nil, domain.NewError("manual chart", domain.KindValidation, "house %d outside [1,12]", house)
		}
		for _, p := range planets {
			if !p.IsValid() {
				return nil, domain.NewError("manual chart", domain.KindValidation, "invalid planet %q", p)
			}
			sign, ok := input.Signs[p]
			if !ok {
				sign = domain.NoSign
			}
			chart.Placements[p] = domain.NewManualPlacement(p, house, sign)
		}
	}
	for p, sign := range input.Signs {
		if _, placed := chart.Placements[p]; !placed {
			chart.Placements[p] = domain.NewManualPlacement(p, 0, sign)
		}
	}

	var lords [domain.HouseCount]domain.Planet
	copy(lords[:], lordList)
	fillHouses(chart, lords)

	m.log.Debug("manual chart: lagna lord %s, %d planets placed", input.LagnaLord, len(chart.Placements))
	return chart, nil
}

// fillHouses sets house numbers, lords and occupants from the placements.
func fillHouses(chart *domain.Chart, lords [domain.HouseCount]domain.Planet) {
	occupants := make([]domain.PlanetSet, domain.HouseCount)
	for i := range occupants {
		occupants[i] = domain.NewPlanetSet()
	}
	for _, pp := range chart.Placements {
		if pp.OK() {
			occupants[pp.House-1][pp.Planet] = true
		}
	}
	for i := range chart.Houses {
		chart.Houses[i] = domain.House{
			Number:  i + 1,
			Lord:    lords[i],
			Planets: occupants[i].Slice(),
		}
	}
}
