// Package chartfile reads chart requests from YAML files.
//
// A chart file looks like:
//
//	label: Chennai 1997
//	birth:
//	  date: 1997-07-11
//	  time: "14:30"
//	  timezone: "+05:30"
//	  place: Chennai
//	nakshatra: 12
//	ephemeris: positions.yaml
//
// Giving lagna_lord switches the chart to manual mode:
//
//	lagna_lord: Mars
//	houses:
//	  1: [Sun, Mercury]
//	  4: [Jupiter, Moon]
//	signs:
//	  Sun: Aries
package chartfile

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// Birth is the birth section of a chart file.
type Birth struct {
	Date      string   `yaml:"date" json:"date"`
	Time      string   `yaml:"time" json:"time,omitempty"`
	Timezone  string   `yaml:"timezone" json:"timezone,omitempty"`
	Place     string   `yaml:"place" json:"place,omitempty"`
	Latitude  *float64 `yaml:"latitude" json:"latitude,omitempty"`
	Longitude *float64 `yaml:"longitude" json:"longitude,omitempty"`
}

// Spec is the parsed, unvalidated content of a chart file.
type Spec struct {
	Label     string            `yaml:"label"`
	Birth     Birth             `yaml:"birth"`
	Nakshatra *int              `yaml:"nakshatra"`
	LagnaLord string            `yaml:"lagna_lord"`
	Houses    map[int][]string  `yaml:"houses"`
	Signs     map[string]string `yaml:"signs"`
	Ephemeris string            `yaml:"ephemeris"`
	Division  string            `yaml:"division"`
}

// Parse decodes a chart file body.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, domain.NewError("parse chart file", domain.KindValidation, "%v", err)
	}
	return &spec, nil
}

// Load reads a chart file and converts it to a request.
// A relative ephemeris path is resolved against the file's directory.
// defaultTZ applies when the file gives no timezone.
func Load(path, defaultTZ string) (domain.ChartRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ChartRequest{}, domain.NewError("load chart file", domain.KindValidation, "%v", err)
	}
	spec, err := Parse(data)
	if err != nil {
		return domain.ChartRequest{}, err
	}
	if spec.Ephemeris != "" && !filepath.IsAbs(spec.Ephemeris) {
		spec.Ephemeris = filepath.Join(filepath.Dir(path), spec.Ephemeris)
	}
	if spec.Label == "" {
		spec.Label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return spec.Request(defaultTZ)
}

// Request validates the spec and builds a chart request.
func (s *Spec) Request(defaultTZ string) (domain.ChartRequest, error) {
	tz := s.Birth.Timezone
	if strings.TrimSpace(tz) == "" {
		tz = defaultTZ
	}
	birth, err := domain.ParseBirth(s.Birth.Date, s.Birth.Time, tz, s.Birth.Place)
	if err != nil {
		return domain.ChartRequest{}, err
	}

	req := domain.ChartRequest{
		Label:           s.Label,
		Birth:           birth,
		Nakshatra:       s.Nakshatra,
		EphemerisSource: s.Ephemeris,
		Division:        strings.TrimSpace(s.Division),
	}

	switch {
	case s.Birth.Latitude != nil && s.Birth.Longitude != nil:
		c, err := domain.NewCoordinates(*s.Birth.Latitude, *s.Birth.Longitude)
		if err != nil {
			return domain.ChartRequest{}, err
		}
		req.Coordinates = &c
	case s.Birth.Latitude != nil || s.Birth.Longitude != nil:
		return domain.ChartRequest{}, domain.NewError("chart file", domain.KindValidation, "latitude and longitude must be given together")
	}

	if s.LagnaLord != "" {
		manual, err := s.manual()
		if err != nil {
			return domain.ChartRequest{}, err
		}
		req.Manual = manual
	} else if len(s.Houses) > 0 || len(s.Signs) > 0 {
		return domain.ChartRequest{}, domain.NewError("chart file", domain.KindValidation, "houses and signs require lagna_lord")
	}

	if err := req.Validate(); err != nil {
		return domain.ChartRequest{}, err
	}
	return req, nil
}

func (s *Spec) manual() (*domain.ManualChart, error) {
	lord, err := domain.ParsePlanet(s.LagnaLord)
	if err != nil {
		return nil, err
	}
	m := &domain.ManualChart{
		LagnaLord: lord,
		Houses:    make(map[int][]domain.Planet, len(s.Houses)),
		Signs:     make(map[domain.Planet]domain.Sign, len(s.Signs)),
	}
	for house, names := range s.Houses {
		planets, err := domain.ParsePlanets(names)
		if err != nil {
			return nil, err
		}
		m.Houses[house] = planets
	}
	for planet, sign := range s.Signs {
		p, err := domain.ParsePlanet(planet)
		if err != nil {
			return nil, err
		}
		sg, err := domain.ParseSign(sign)
		if err != nil {
			return nil, err
		}
		m.Signs[p] = sg
	}
	return m, nil
}
