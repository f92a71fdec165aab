package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
	"github.com/custodia-labs/graha/internal/core/ports/driving"
	"github.com/custodia-labs/graha/internal/logger"
)

// Ensure ChartService implements the interface.
var _ driving.ChartService = (*ChartService)(nil)

// ChartService runs the full analysis pipeline for chart requests.
type ChartService struct {
	rules     driven.RuleStore
	ephemeris driven.EphemerisProvider
	geocoder  driven.Geocoder
	reports   driven.ReportStore

	positions  *PositionModel
	divisional *DivisionalCalculator
	aspects    *AspectEngine
	evaluator  *RuleEvaluator
	yogas      *YogaDetector
	dasha      *DashaScheduler
	assembler  *ReportAssembler

	defaultDivision string
	now             func() time.Time
	log             *logger.Logger
}

// NewChartService creates a chart service.
// The ephemeris, geocoder and report store are optional and set with their setters.
func NewChartService(rules driven.RuleStore, registry driven.ConditionRegistry, log *logger.Logger) *ChartService {
	return &ChartService{
		rules:      rules,
		positions:  NewPositionModel(log),
		divisional: NewDivisionalCalculator(),
		aspects:    NewAspectEngine(domain.DefaultOrb),
		evaluator:  NewRuleEvaluator(),
		yogas:      NewYogaDetector(registry, log),
		dasha:      NewDashaScheduler(),
		assembler:  NewReportAssembler(),
		now:        time.Now,
		log:        log,
	}
}

// SetEphemeris sets the ephemeris provider.
func (s *ChartService) SetEphemeris(e driven.EphemerisProvider) {
	s.ephemeris = e
}

// SetGeocoder sets the geocoder.
func (s *ChartService) SetGeocoder(g driven.Geocoder) {
	s.geocoder = g
}

// SetReportStore sets the store used when a request asks to save its report.
func (s *ChartService) SetReportStore(r driven.ReportStore) {
	s.reports = r
}

// SetAnalysisDefaults applies the orb and the default division code.
func (s *ChartService) SetAnalysisDefaults(a domain.AnalysisSettings) {
	s.aspects = NewAspectEngine(a.Orb)
	s.defaultDivision = a.Division
}

// Analyze builds and analyses one chart.
func (s *ChartService) Analyze(ctx context.Context, req domain.ChartRequest) (*domain.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ref := s.rules.Snapshot()
	if ref == nil {
		return nil, domain.NewError("analyze", domain.KindConfiguration, "reference data not loaded")
	}

	s.log.Section("Chart")
	var warnings []string

	chart, err := s.buildChart(ctx, req, &warnings)
	if err != nil {
		return nil, err
	}
	for _, p := range chart.FailedPlanets() {
		pp, _ := chart.Placement(p)
		warnings = append(warnings, fmt.Sprintf("%s: position unavailable: %v", p, pp.Err))
	}
	for _, h := range chart.Houses {
		if !h.HasLord() {
			warnings = append(warnings, fmt.Sprintf("house %d: lord unknown", h.Number))
		}
	}

	parts := ReportParts{Label: req.Label, Chart: chart}

	code := req.Division
	if code == "" {
		code = s.defaultDivision
	}
	if code != "" {
		dc, err := s.divisionalFor(chart, code)
		if err != nil {
			return nil, err
		}
		parts.Divisional = dc
	}

	s.log.Section("Aspects")
	parts.Aspects = SatisfiedAspects(s.aspects.PlanetAspects(chart))
	parts.HouseAspects = s.aspects.HouseAspects(chart)
	parts.Conjunctions = s.aspects.DegreeAspects(chart)
	s.log.Debug("%d sign aspects, %d degree aspects", len(parts.Aspects), len(parts.Conjunctions))

	s.log.Section("Rules")
	parts.Topics = s.evaluator.EvaluateAll(ref, chart)
	parts.Strengths = s.evaluator.Strengths(chart)
	parts.Yogas = s.yogas.Detect(chart, ref.Yogas)
	s.log.Debug("%d yogas detected", len(parts.Yogas))

	if req.Nakshatra != nil {
		s.log.Section("Dasha")
		tl, err := s.dasha.Build(req.Birth.Time, *req.Nakshatra)
		if err != nil {
			return nil, err
		}
		parts.Timeline = tl

		at := req.AsOf
		if at.IsZero() {
			at = s.now().In(req.Birth.Time.Location())
		}
		if p, ok := tl.PeriodOn(at); ok {
			parts.CurrentDasha = &p
			s.log.Debug("current mahadasha: %s", p.Planet)
		} else {
			warnings = append(warnings, fmt.Sprintf("no mahadasha period covers %s", at.Format(domain.DateLayout)))
		}
	}

	parts.Warnings = warnings
	report := s.assembler.Assemble(parts)

	if req.Save {
		if s.reports == nil {
			return nil, errors.New("save report: history store not configured")
		}
		if err := s.reports.Save(ctx, report); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
		s.log.Info("saved report %s", report.ID)
	}

	return report, nil
}

func (s *ChartService) buildChart(ctx context.Context, req domain.ChartRequest, warnings *[]string) (*domain.Chart, error) {
	if req.Manual != nil {
		birth := req.Birth
		chart, err := s.positions.FromManual(&birth, *req.Manual)
		if err != nil {
			return nil, err
		}
		chart.Coordinates = req.Coordinates
		return chart, nil
	}

	if s.ephemeris == nil {
		return nil, fmt.Errorf("analyze: %w", domain.ErrEphemerisUnavailable)
	}

	coords := s.resolveCoordinates(ctx, req)
	if coords.Fallback {
		*warnings = append(*warnings, "birth place unresolved: using fallback coordinates (0, 0)")
	}

	result, err := s.ephemeris.Compute(ctx, domain.EphemerisRequest{
		Birth:       req.Birth,
		Coordinates: coords,
		Source:      req.EphemerisSource,
	})
	if err != nil {
		return nil, fmt.Errorf("compute positions: %w", err)
	}
	return s.positions.FromEphemeris(req.Birth, coords, result)
}

func (s *ChartService) resolveCoordinates(ctx context.Context, req domain.ChartRequest) domain.Coordinates {
	if req.Coordinates != nil {
		return *req.Coordinates
	}
	if req.Birth.Place == "" || s.geocoder == nil {
		return domain.FallbackCoordinates()
	}
	c := s.geocoder.Resolve(ctx, req.Birth.Place)
	s.log.Debug("resolved %q to %.4f, %.4f (fallback=%t)", req.Birth.Place, c.Latitude, c.Longitude, c.Fallback)
	return c
}

func (s *ChartService) divisionalFor(chart *domain.Chart, code string) (*domain.DivisionalChart, error) {
	dc, err := domain.ParseDivision(code)
	if err != nil {
		return nil, err
	}
	return s.divisional.ForChart(chart).Get(dc)
}

// AnalyzeBatch analyses requests concurrently, one goroutine per request.
func (s *ChartService) AnalyzeBatch(ctx context.Context, reqs []domain.ChartRequest) ([]*domain.Report, error) {
	reports := make([]*domain.Report, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			r, err := s.Analyze(gctx, req)
			if err != nil {
				if req.Label != "" {
					return fmt.Errorf("%s: %w", req.Label, err)
				}
				return fmt.Errorf("chart %d: %w", i+1, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Timeline returns the mahadasha timeline.
func (s *ChartService) Timeline(birth time.Time, nakshatra int) (*domain.DashaTimeline, error) {
	return s.dasha.Build(birth, nakshatra)
}

// CurrentDasha returns the period covering the calendar date of on.
func (s *ChartService) CurrentDasha(birth time.Time, nakshatra int, on time.Time) (domain.DashaPeriod, bool, error) {
	return s.dasha.PeriodOn(birth, nakshatra, on)
}

// HouseLords derives the twelve house lords from the first-house lord.
func (s *ChartService) HouseLords(firstLord domain.Planet) ([]domain.Planet, error) {
	return s.positions.AssignHouseLords(firstLord)
}
