package domain

import "time"

// NakshatraCount is the number of lunar mansions; valid indexes are 0..26.
const NakshatraCount = 27

// DaysPerYear is the fixed Julian year used for period lengths.
const DaysPerYear = 365.25

// DashaCycleYears is the length of one full Vimshottari cycle.
const DashaCycleYears = 120

var dashaSequence = [9]Planet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

var dashaYears = map[Planet]int{
	Ketu: 7, Venus: 20, Sun: 6, Moon: 10, Mars: 7,
	Rahu: 18, Jupiter: 16, Saturn: 19, Mercury: 17,
}

// DashaSequence returns the canonical cyclic order of mahadasha lords.
func DashaSequence() []Planet {
	out := make([]Planet, len(dashaSequence))
	copy(out, dashaSequence[:])
	return out
}

// DashaYears returns the mahadasha length of p in years.
func DashaYears(p Planet) int {
	return dashaYears[p]
}

// DashaDuration converts years to a duration of exactly years x 365.25 days.
func DashaDuration(years int) time.Duration {
	return time.Duration(years) * time.Duration(DaysPerYear*24*float64(time.Hour))
}

// DashaPeriod is one mahadasha.
type DashaPeriod struct {
	Planet Planet    `json:"planet"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Years  int       `json:"years"`
}

// Contains reports whether t is in [Start, End).
func (p DashaPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// DashaTimeline is one contiguous 120-year cycle of nine periods.
type DashaTimeline struct {
	Birth     time.Time     `json:"birth"`
	Nakshatra int           `json:"nakshatra"`
	Periods   []DashaPeriod `json:"periods"`
}

// Start returns the first period start.
func (t *DashaTimeline) Start() time.Time {
	if len(t.Periods) == 0 {
		return time.Time{}
	}
	return t.Periods[0].Start
}

// End returns the final period end.
func (t *DashaTimeline) End() time.Time {
	if len(t.Periods) == 0 {
		return time.Time{}
	}
	return t.Periods[len(t.Periods)-1].End
}

// PeriodAt returns the period containing at. Periods are half-open [start,end)
// except the last, which also contains its end instant. Instants outside the
// cycle report false.
func (t *DashaTimeline) PeriodAt(at time.Time) (DashaPeriod, bool) {
	n := len(t.Periods)
	for i, p := range t.Periods {
		if p.Contains(at) {
			return p, true
		}
		if i == n-1 && at.Equal(p.End) {
			return p, true
		}
	}
	return DashaPeriod{}, false
}

// PeriodOn returns the period covering a calendar date. Only the year, month
// and day of date are used. Period boundaries are read as dates in the birth
// location, so the first period covers the birth date whatever the birth time.
// Periods cover [start date, end date) except the last, which also covers its
// end date.
func (t *DashaTimeline) PeriodOn(date time.Time) (DashaPeriod, bool) {
	loc := t.Birth.Location()
	day := civilDay(date)
	n := len(t.Periods)
	for i, p := range t.Periods {
		start, end := civilDay(p.Start.In(loc)), civilDay(p.End.In(loc))
		if day.Before(start) {
			continue
		}
		if day.Before(end) || (i == n-1 && day.Equal(end)) {
			return p, true
		}
	}
	return DashaPeriod{}, false
}

// In returns a copy of the timeline with every instant in loc.
func (t *DashaTimeline) In(loc *time.Location) *DashaTimeline {
	out := &DashaTimeline{
		Birth:     t.Birth.In(loc),
		Nakshatra: t.Nakshatra,
		Periods:   make([]DashaPeriod, len(t.Periods)),
	}
	for i, p := range t.Periods {
		p.Start, p.End = p.Start.In(loc), p.End.In(loc)
		out.Periods[i] = p
	}
	return out
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
