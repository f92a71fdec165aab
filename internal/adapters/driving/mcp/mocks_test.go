package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// mockChartService is a mock implementation of driving.ChartService.
type mockChartService struct {
	report   *domain.Report
	timeline *domain.DashaTimeline
	lords    []domain.Planet
	err      error

	lastReq   domain.ChartRequest
	lastBirth time.Time
	lastFirst domain.Planet
}

func (m *mockChartService) Analyze(_ context.Context, req domain.ChartRequest) (*domain.Report, error) {
	m.lastReq = req
	return m.report, m.err
}

func (m *mockChartService) AnalyzeBatch(_ context.Context, reqs []domain.ChartRequest) ([]*domain.Report, error) {
	out := make([]*domain.Report, len(reqs))
	for i := range reqs {
		out[i] = m.report
	}
	return out, m.err
}

func (m *mockChartService) Timeline(birth time.Time, _ int) (*domain.DashaTimeline, error) {
	m.lastBirth = birth
	return m.timeline, m.err
}

func (m *mockChartService) CurrentDasha(_ time.Time, _ int, at time.Time) (domain.DashaPeriod, bool, error) {
	if m.timeline == nil {
		return domain.DashaPeriod{}, false, m.err
	}
	p, ok := m.timeline.PeriodOn(at)
	return p, ok, m.err
}

func (m *mockChartService) HouseLords(first domain.Planet) ([]domain.Planet, error) {
	m.lastFirst = first
	return m.lords, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	summaries []domain.ReportSummary
	report    *domain.Report
	err       error
	lastID    string
}

func (m *mockHistoryService) List(_ context.Context) ([]domain.ReportSummary, error) {
	return m.summaries, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.Report, error) {
	m.lastID = id
	return m.report, m.err
}

func (m *mockHistoryService) Delete(_ context.Context, id string) error {
	m.lastID = id
	return m.err
}

// mockRulesService is a mock implementation of driving.RulesService.
type mockRulesService struct {
	ref *domain.ReferenceData
	err error
}

func (m *mockRulesService) Current() *domain.ReferenceData {
	return m.ref
}

func (m *mockRulesService) Validate(_ string) (*domain.ReferenceData, error) {
	return m.ref, m.err
}

func testTimeline() *domain.DashaTimeline {
	start := time.Date(1997, 7, 11, 9, 0, 0, 0, time.UTC)
	moonEnd := start.Add(domain.DashaDuration(10))
	return &domain.DashaTimeline{
		Birth:     start,
		Nakshatra: 12,
		Periods: []domain.DashaPeriod{
			{Planet: domain.Moon, Start: start, End: moonEnd, Years: 10},
			{Planet: domain.Mars, Start: moonEnd, End: moonEnd.Add(domain.DashaDuration(7)), Years: 7},
		},
	}
}

func testReport() *domain.Report {
	return &domain.Report{
		ID:     "rep-1",
		Label:  "Chennai 1997",
		Source: domain.PlacementEphemeris,
		Houses: []domain.House{
			{Number: 1, Lord: domain.Mars, Planets: []domain.Planet{domain.Sun, domain.Mercury}},
			{Number: 2, Lord: domain.Venus},
		},
		Strengths: []domain.PlanetStrength{
			{Planet: domain.Sun, Sign: domain.Aries, Strength: domain.StrengthExalted},
		},
		HouseAspects: []domain.HouseAspect{
			{Planet: domain.Mars, House: 4, Houses: []int{7, 10, 11}},
		},
		Topics: []domain.TopicVerdicts{{
			Topic: domain.TopicCareer,
			Houses: []domain.HouseVerdict{
				{House: 1, Status: domain.VerdictInfluenced, Positive: []domain.Planet{domain.Sun}, Meaning: "Self"},
				{House: 2, Status: domain.VerdictNoRule},
				{House: 3, Status: domain.VerdictNoInfluence, Meaning: "Siblings"},
			},
		}},
		Divisional: &domain.DivisionalChart{
			Code:  domain.DivisionNavamsa,
			Parts: 9,
			Positions: []domain.DivisionalPosition{
				{Planet: domain.Sun, Sign: domain.Cancer, DegreeInSign: 3.33},
				{Planet: domain.Saturn, Err: domain.ErrEphemeris},
			},
		},
		Yogas:        []domain.DetectedYoga{{Name: "Budha-Aditya Yoga", House: 1}},
		CurrentDasha: &testTimeline().Periods[0],
		Warnings:     []string{},
	}
}
