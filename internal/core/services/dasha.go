package services

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// dashaMemoSize bounds the number of memoised timelines.
const dashaMemoSize = 256

type dashaKey struct {
	sec       int64
	nsec      int
	nakshatra int
}

// DashaScheduler builds and queries Vimshottari mahadasha timelines.
// Timelines are memoised in UTC per (birth instant, nakshatra index), keeping
// the most recently used ones. Callers get their own copy in the birth location.
type DashaScheduler struct {
	memo *lru.Cache[dashaKey, *domain.DashaTimeline]
}

// NewDashaScheduler creates a scheduler with an empty memo.
func NewDashaScheduler() *DashaScheduler {
	memo, err := lru.New[dashaKey, *domain.DashaTimeline](dashaMemoSize)
	if err != nil {
		panic(err) // only for a non-positive size
	}
	return &DashaScheduler{memo: memo}
}

// StartingPlanet returns sequence[n mod 9] for a nakshatra index in [0,26].
func (s *DashaScheduler) StartingPlanet(nakshatra int) (domain.Planet, error) {
	if nakshatra < 0 || nakshatra >= domain.NakshatraCount {
		return "", domain.NewError("dasha start", domain.KindValidation,
			"nakshatra index %d outside [0,%d]", nakshatra, domain.NakshatraCount-1)
	}
	seq := domain.DashaSequence()
	return seq[nakshatra%len(seq)], nil
}

// Build returns the nine contiguous periods starting at birth, in the
// location of birth.
func (s *DashaScheduler) Build(birth time.Time, nakshatra int) (*domain.DashaTimeline, error) {
	if _, err := s.StartingPlanet(nakshatra); err != nil {
		return nil, err
	}

	key := dashaKey{sec: birth.Unix(), nsec: birth.Nanosecond(), nakshatra: nakshatra}
	tl, ok := s.memo.Get(key)
	if !ok {
		tl = buildTimeline(birth.UTC(), nakshatra)
		s.memo.Add(key, tl)
	}
	return tl.In(birth.Location()), nil
}

func buildTimeline(birth time.Time, nakshatra int) *domain.DashaTimeline {
	seq := domain.DashaSequence()
	startIdx := nakshatra % len(seq)

	tl := &domain.DashaTimeline{
		Birth:     birth,
		Nakshatra: nakshatra,
		Periods:   make([]domain.DashaPeriod, 0, len(seq)),
	}
	start := birth
	for i := range seq {
		p := seq[(startIdx+i)%len(seq)]
		years := domain.DashaYears(p)
		end := start.Add(domain.DashaDuration(years))
		tl.Periods = append(tl.Periods, domain.DashaPeriod{Planet: p, Start: start, End: end, Years: years})
		start = end
	}
	return tl
}

// PeriodOn returns the period covering the calendar date of on, or false
// outside the cycle.
func (s *DashaScheduler) PeriodOn(birth time.Time, nakshatra int, on time.Time) (domain.DashaPeriod, bool, error) {
	tl, err := s.Build(birth, nakshatra)
	if err != nil {
		return domain.DashaPeriod{}, false, err
	}
	p, ok := tl.PeriodOn(on)
	return p, ok, nil
}
