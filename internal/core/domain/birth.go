package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Input layouts accepted for birth date and clock time.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// BirthData is a validated birth instant plus its source text.
type BirthData struct {
	// Time is the birth instant in the birth timezone.
	Time time.Time `json:"time"`

	// Timezone is the zone as given (an offset such as "+05:30" or an IANA name).
	Timezone string `json:"timezone"`

	// Place is the free-text place name, possibly empty.
	Place string `json:"place"`
}

// ParseBirth validates date ("YYYY-MM-DD"), clock ("HH:MM", empty means midnight)
// and timezone (empty means UTC).
func ParseBirth(date, clock, tz, place string) (BirthData, error) {
	const op = "parse birth"

	loc, err := ParseTimezone(tz)
	if err != nil {
		return BirthData{}, err
	}

	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return BirthData{}, NewError(op, KindValidation, "invalid date %q: expected YYYY-MM-DD", date)
	}

	hour, minute := 0, 0
	if c := strings.TrimSpace(clock); c != "" {
		t, err := time.Parse(ClockLayout, c)
		if err != nil {
			return BirthData{}, NewError(op, KindValidation, "invalid time %q: expected HH:MM", clock)
		}
		hour, minute = t.Hour(), t.Minute()
	}

	instant := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc)
	if strings.TrimSpace(tz) == "" {
		tz = "UTC"
	}
	return BirthData{Time: instant, Timezone: strings.TrimSpace(tz), Place: strings.TrimSpace(place)}, nil
}

// ParseTimezone accepts "", "UTC", "Z", a numeric offset ("+05:30", "-0800", "+5")
// or an IANA zone name.
func ParseTimezone(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	switch strings.ToUpper(tz) {
	case "", "UTC", "Z", "GMT":
		return time.UTC, nil
	}

	if tz[0] == '+' || tz[0] == '-' {
		offset, err := parseOffset(tz[1:])
		if err != nil {
			return nil, NewError("parse timezone", KindValidation, "invalid timezone offset %q", tz)
		}
		if tz[0] == '-' {
			offset = -offset
		}
		return time.FixedZone(tz, offset), nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, NewError("parse timezone", KindValidation, "unknown timezone %q", tz)
	}
	return loc, nil
}

func parseOffset(s string) (int, error) {
	s = strings.ReplaceAll(s, ":", "")
	var h, m int
	var err error
	switch len(s) {
	case 1, 2:
		h, err = strconv.Atoi(s)
	case 4:
		h, err = strconv.Atoi(s[:2])
		if err == nil {
			m, err = strconv.Atoi(s[2:])
		}
	default:
		return 0, fmt.Errorf("bad offset length")
	}
	if err != nil {
		return 0, err
	}
	if h > 14 || m > 59 {
		return 0, fmt.Errorf("offset out of range")
	}
	return h*3600 + m*60, nil
}

// Coordinates is a resolved geographic location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Fallback marks the documented (0,0) substitute used when geocoding failed.
	Fallback bool `json:"fallback"`
}

// FallbackCoordinates is the marker value returned when a place cannot be resolved.
func FallbackCoordinates() Coordinates {
	return Coordinates{Fallback: true}
}

// NewCoordinates validates latitude and longitude ranges.
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Coordinates{}, NewError("coordinates", KindValidation, "latitude %v outside [-90,90]", lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return Coordinates{}, NewError("coordinates", KindValidation, "longitude %v outside [-180,180]", lon)
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

// ManualChart is a chart given by hand: a first-house lord plus
// planets-in-houses and, optionally, planets-in-signs.
type ManualChart struct {
	LagnaLord Planet
	Houses    map[int][]Planet
	Signs     map[Planet]Sign
}

// ChartRequest is everything needed to analyse one chart.
type ChartRequest struct {
	// Label names the chart in history listings.
	Label string

	Birth BirthData

	// Coordinates skips geocoding when set.
	Coordinates *Coordinates

	// Nakshatra seeds the dasha timeline; nil disables dasha analysis.
	Nakshatra *int

	// Manual switches to manual mode; the ephemeris is not consulted.
	Manual *ManualChart

	// EphemerisSource is passed to the ephemeris provider (for example a positions file).
	EphemerisSource string

	// Division is an optional divisional chart code such as "D9".
	Division string

	// AsOf is the calendar date used for the current dasha; zero means today
	// in the birth location.
	AsOf time.Time

	// Save persists the report to history.
	Save bool
}

// Validate checks the request at the core boundary.
func (r ChartRequest) Validate() error {
	const op = "validate chart request"

	if r.Birth.Time.IsZero() {
		return NewError(op, KindValidation, "birth date is required")
	}
	if r.Nakshatra != nil && (*r.Nakshatra < 0 || *r.Nakshatra >= NakshatraCount) {
		return NewError(op, KindValidation, "nakshatra index %d outside [0,%d]", *r.Nakshatra, NakshatraCount-1)
	}
	if r.Manual != nil {
		if !r.Manual.LagnaLord.IsValid() {
			return NewError(op, KindValidation, "lagna lord %q is not a planet", r.Manual.LagnaLord)
		}
		seen := make(map[Planet]int)
		for house, planets := range r.Manual.Houses {
			if !ValidHouse(house) {
				return NewError(op, KindValidation, "house %d outside [1,12]", house)
			}
			for _, p := range planets {
				if !p.IsValid() {
					return NewError(op, KindValidation, "invalid planet %q in house %d", p, house)
				}
				if prev, ok := seen[p]; ok && prev != house {
					return NewError(op, KindValidation, "%s placed in both house %d and house %d", p, prev, house)
				}
				seen[p] = house
			}
		}
		for p, s := range r.Manual.Signs {
			if !p.IsValid() || !s.IsValid() {
				return NewError(op, KindValidation, "invalid sign placement %s=%s", p, s)
			}
		}
	}
	if r.Division != "" {
		if _, err := ParseDivision(r.Division); err != nil {
			return err
		}
	}
	return nil
}
