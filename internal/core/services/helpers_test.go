package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graha/internal/conditions"
	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/logger"
)

// sampleLongitudes places the planets so that Sun and Mercury share the
// first house and several exact oppositions exist.
var sampleLongitudes = map[domain.Planet]float64{
	domain.Sun:     10,
	domain.Moon:    35,
	domain.Mars:    100,
	domain.Mercury: 12,
	domain.Jupiter: 190,
	domain.Venus:   50,
	domain.Saturn:  280,
	domain.Rahu:    150,
	domain.Ketu:    330,
}

// sampleResult reports every planet in whole-sign houses from an Aries lagna.
func sampleResult() *domain.EphemerisResult {
	res := &domain.EphemerisResult{
		Planets: make(map[domain.Planet]domain.EphemerisEntry),
		Cusps:   make(map[int]domain.CuspEntry),
	}
	for p, lon := range sampleLongitudes {
		res.Planets[p] = domain.EphemerisEntry{Longitude: lon, House: int(lon/30) + 1}
	}
	for h := 1; h <= domain.HouseCount; h++ {
		res.Cusps[h] = domain.CuspEntry{Degree: float64(h-1) * 30}
	}
	return res
}

func sampleBirth(t *testing.T) domain.BirthData {
	t.Helper()
	b, err := domain.ParseBirth("1997-07-11", "14:30", "+05:30", "Chennai")
	require.NoError(t, err)
	return b
}

func sampleChart(t *testing.T) *domain.Chart {
	t.Helper()
	chart, err := NewPositionModel(logger.Nop()).FromEphemeris(sampleBirth(t), domain.Coordinates{Latitude: 13.08, Longitude: 80.27}, sampleResult())
	require.NoError(t, err)
	return chart
}

func manualChart(t *testing.T, lagnaLord domain.Planet, houses map[int][]domain.Planet) *domain.Chart {
	t.Helper()
	chart, err := NewPositionModel(logger.Nop()).FromManual(nil, domain.ManualChart{LagnaLord: lagnaLord, Houses: houses})
	require.NoError(t, err)
	return chart
}

func sampleReference() *domain.ReferenceData {
	return &domain.ReferenceData{
		Rules: domain.RuleSet{
			domain.TopicCareer: {
				"1":  {Positive: []domain.Planet{domain.Sun, domain.Mars}, Negative: []domain.Planet{domain.Rahu}},
				"10": {Positive: []domain.Planet{domain.Saturn}, Negative: []domain.Planet{domain.Ketu}},
				"12": {Positive: []domain.Planet{domain.Jupiter}},
			},
			domain.TopicMarriage: {
				"7": {Positive: []domain.Planet{domain.Venus}, Negative: []domain.Planet{domain.Jupiter, domain.Saturn}},
			},
			domain.TopicWealth:       {"2": {Positive: []domain.Planet{domain.Venus, domain.Moon}}},
			domain.TopicSpirituality: {},
		},
		HouseMeanings: map[int]string{1: "Self", 7: "Partnership"},
		Yogas: []domain.YogaDefinition{
			{
				Name:        "Gaja-Kesari Yoga",
				Description: "Jupiter and Moon together.",
				Conditions: []domain.Condition{
					{Kind: domain.ConditionConjunction, House: 1, Planets: []domain.Planet{domain.Jupiter, domain.Moon}},
					{Kind: domain.ConditionConjunction, House: 4, Planets: []domain.Planet{domain.Jupiter, domain.Moon}},
				},
			},
			{
				Name:        "Budha-Aditya Yoga",
				Description: "Sun and Mercury together.",
				Conditions: []domain.Condition{
					{Kind: domain.ConditionConjunction, House: 1, Planets: []domain.Planet{domain.Sun, domain.Mercury}},
					{Kind: domain.ConditionConjunction, House: 2, Planets: []domain.Planet{domain.Sun, domain.Mercury}},
				},
			},
		},
		Source:   "test",
		LoadedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

type stubRuleStore struct {
	ref *domain.ReferenceData
}

func (s *stubRuleStore) Snapshot() *domain.ReferenceData { return s.ref }

type stubEphemeris struct {
	mu     sync.Mutex
	result *domain.EphemerisResult
	err    error
	reqs   []domain.EphemerisRequest
}

func (s *stubEphemeris) Compute(_ context.Context, req domain.EphemerisRequest) (*domain.EphemerisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	return s.result, s.err
}

type stubGeocoder struct {
	coords domain.Coordinates
	calls  int
}

func (s *stubGeocoder) Resolve(_ context.Context, _ string) domain.Coordinates {
	s.calls++
	return s.coords
}

func newTestChartService(ref *domain.ReferenceData) *ChartService {
	svc := NewChartService(&stubRuleStore{ref: ref}, conditions.NewDefaultRegistry(), logger.Nop())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func intPtr(n int) *int { return &n }
