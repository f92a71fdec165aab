// Package file provides an ephemeris backed by a YAML positions file.
//
// The file lists sidereal longitudes and houses computed elsewhere:
//
//	planets:
//	  Sun: {longitude: 84.2, house: 10}
//	  Rahu: {error: "outside table range"}
//	cusps:
//	  1: 180.5
//	  2: 210.0
//
// Planets absent from the file are reported as individual failures.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.EphemerisProvider = (*Provider)(nil)

// Provider reads positions from a YAML file.
type Provider struct {
	defaultPath string
}

// NewProvider creates a provider. defaultPath is used when a request has no Source.
func NewProvider(defaultPath string) *Provider {
	return &Provider{defaultPath: defaultPath}
}

type rawEntry struct {
	Longitude *float64 `yaml:"longitude"`
	House     int      `yaml:"house"`
	Error     string   `yaml:"error"`
}

type rawCusp struct {
	Degree *float64
	Error  string
}

// UnmarshalYAML accepts either a bare degree or {degree, error}.
func (c *rawCusp) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var deg float64
		if err := node.Decode(&deg); err != nil {
			return err
		}
		c.Degree = &deg
		return nil
	}
	var full struct {
		Degree *float64 `yaml:"degree"`
		Error  string   `yaml:"error"`
	}
	if err := node.Decode(&full); err != nil {
		return err
	}
	c.Degree, c.Error = full.Degree, full.Error
	return nil
}

type rawFile struct {
	Planets map[string]rawEntry `yaml:"planets"`
	Cusps   map[int]rawCusp     `yaml:"cusps"`
}

// Compute reads the positions file named by req.Source, or the default path.
func (p *Provider) Compute(ctx context.Context, req domain.EphemerisRequest) (*domain.EphemerisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := req.Source
	if path == "" {
		path = p.defaultPath
	}
	if path == "" {
		return nil, fmt.Errorf("no positions file: %w", domain.ErrEphemerisUnavailable)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read positions file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a positions document.
func Parse(data []byte) (*domain.EphemerisResult, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, domain.NewError("parse positions", domain.KindConfiguration, "%v", err)
	}

	result := &domain.EphemerisResult{
		Planets: make(map[domain.Planet]domain.EphemerisEntry, len(raw.Planets)),
		Cusps:   make(map[int]domain.CuspEntry, len(raw.Cusps)),
	}

	for name, e := range raw.Planets {
		planet, err := domain.ParsePlanet(name)
		if err != nil {
			return nil, domain.NewError("parse positions", domain.KindConfiguration, "%v", err)
		}
		switch {
		case e.Error != "":
			result.Planets[planet] = domain.EphemerisEntry{Err: errors.New(e.Error)}
		case e.Longitude == nil:
			result.Planets[planet] = domain.EphemerisEntry{Err: errors.New("longitude missing")}
		default:
			result.Planets[planet] = domain.EphemerisEntry{Longitude: *e.Longitude, House: e.House}
		}
	}

	for house, c := range raw.Cusps {
		if !domain.ValidHouse(house) {
			return nil, domain.NewError("parse positions", domain.KindConfiguration, "cusp %d out of range", house)
		}
		switch {
		case c.Error != "":
			result.Cusps[house] = domain.CuspEntry{Err: errors.New(c.Error)}
		case c.Degree == nil:
			result.Cusps[house] = domain.CuspEntry{Err: errors.New("degree missing")}
		default:
			result.Cusps[house] = domain.CuspEntry{Degree: *c.Degree}
		}
	}

	return result, nil
}
