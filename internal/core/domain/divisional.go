package domain

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// DivisionCode names a divisional (varga) chart, e.g. "D9".
type DivisionCode string

// Supported division codes.
const (
	DivisionRasi        DivisionCode = "D1"
	DivisionNavamsa     DivisionCode = "D9"
	DivisionDasamsa     DivisionCode = "D10"
	DivisionDwadasamsa  DivisionCode = "D12"
	DivisionChaturvimsa DivisionCode = "D24"
)

var divisionParts = map[DivisionCode]int{
	DivisionRasi:        1,
	DivisionNavamsa:     9,
	DivisionDasamsa:     10,
	DivisionDwadasamsa:  12,
	DivisionChaturvimsa: 24,
}

// ParseDivision canonicalises a division code ("d9" -> "D9").
// Unknown codes are a ConfigurationError.
func ParseDivision(code string) (DivisionCode, error) {
	c := DivisionCode(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := divisionParts[c]; !ok {
		return "", NewError("parse division", KindConfiguration, "unsupported division code %q", code)
	}
	return c, nil
}

// Parts returns how many equal parts each sign is divided into, or 0 if unknown.
func (c DivisionCode) Parts() int {
	return divisionParts[c]
}

// String returns the code.
func (c DivisionCode) String() string {
	return string(c)
}

// AllDivisions returns the supported codes ordered by part count.
func AllDivisions() []DivisionCode {
	out := make([]DivisionCode, 0, len(divisionParts))
	for c := range divisionParts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Parts() < out[j].Parts() })
	return out
}

// DivisionalPosition is a planet's derived position in a divisional chart.
type DivisionalPosition struct {
	Planet       Planet
	Longitude    float64
	Sign         Sign
	DegreeInSign float64

	// Err carries through the natal placement's failure.
	Err error
}

type divisionalPositionJSON struct {
	Planet       Planet   `json:"planet"`
	Longitude    *float64 `json:"longitude"`
	Sign         *Sign    `json:"sign"`
	DegreeInSign *float64 `json:"degree_in_sign"`
	Error        *string  `json:"error"`
}

// MarshalJSON emits null numbers for failed positions.
func (d DivisionalPosition) MarshalJSON() ([]byte, error) {
	out := divisionalPositionJSON{Planet: d.Planet}
	if d.Err != nil {
		msg := d.Err.Error()
		out.Error = &msg
	} else {
		lon, sign, deg := d.Longitude, d.Sign, d.DegreeInSign
		out.Longitude, out.Sign, out.DegreeInSign = &lon, &sign, &deg
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a position written by MarshalJSON.
func (d *DivisionalPosition) UnmarshalJSON(b []byte) error {
	var in divisionalPositionJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*d = DivisionalPosition{Planet: in.Planet, Sign: NoSign}
	if in.Error != nil {
		d.Err = errors.New(*in.Error)
		return nil
	}
	if in.Longitude != nil {
		d.Longitude = *in.Longitude
	}
	if in.Sign != nil {
		d.Sign = *in.Sign
	}
	if in.DegreeInSign != nil {
		d.DegreeInSign = *in.DegreeInSign
	}
	return nil
}

// DivisionalChart is an immutable derived chart.
type DivisionalChart struct {
	Code      DivisionCode         `json:"code"`
	Parts     int                  `json:"parts"`
	Positions []DivisionalPosition `json:"positions"`
}

// Position returns the derived position of a planet.
func (d *DivisionalChart) Position(p Planet) (DivisionalPosition, bool) {
	for _, pos := range d.Positions {
		if pos.Planet == p {
			return pos, true
		}
	}
	return DivisionalPosition{}, false
}
