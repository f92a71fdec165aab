package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// ReportParts are the outputs merged into a report.
// Nil fields mean the sub-analysis did not run.
type ReportParts struct {
	Label        string
	Chart        *domain.Chart
	Divisional   *domain.DivisionalChart
	Topics       []domain.TopicVerdicts
	Strengths    []domain.PlanetStrength
	Aspects      []domain.AspectRelation
	HouseAspects []domain.HouseAspect
	Conjunctions []domain.DegreeAspect
	Yogas        []domain.DetectedYoga
	Timeline     *domain.DashaTimeline
	CurrentDasha *domain.DashaPeriod
	Warnings     []string
}

// ReportAssembler merges analysis outputs into an immutable report.
type ReportAssembler struct {
	now   func() time.Time
	newID func() string
}

// NewReportAssembler creates an assembler stamping reports with the wall clock and a UUID.
func NewReportAssembler() *ReportAssembler {
	return &ReportAssembler{now: time.Now, newID: uuid.NewString}
}

// Assemble builds the report. Lists are never nil so the serialised shape
// does not depend on which analyses ran.
func (a *ReportAssembler) Assemble(parts ReportParts) *domain.Report {
	r := &domain.Report{
		ID:           a.newID(),
		Label:        parts.Label,
		GeneratedAt:  a.now().UTC(),
		Houses:       []domain.House{},
		Placements:   []domain.PlanetPlacement{},
		Divisional:   parts.Divisional,
		Topics:       nonNil(parts.Topics),
		Strengths:    nonNil(parts.Strengths),
		Aspects:      nonNil(parts.Aspects),
		HouseAspects: nonNil(parts.HouseAspects),
		Conjunctions: nonNil(parts.Conjunctions),
		Yogas:        nonNil(parts.Yogas),
		CurrentDasha: parts.CurrentDasha,
		Timeline:     []domain.DashaPeriod{},
		Warnings:     nonNil(parts.Warnings),
	}

	if c := parts.Chart; c != nil {
		r.Birth = c.Birth
		r.Coordinates = c.Coordinates
		r.Source = c.Source
		r.Placements = c.OrderedPlacements()
		for _, h := range c.Houses {
			if h.Planets == nil {
				h.Planets = []domain.Planet{}
			}
			r.Houses = append(r.Houses, h)
		}
	}
	if parts.Timeline != nil {
		r.Timeline = append(r.Timeline, parts.Timeline.Periods...)
	}
	return r
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
