package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.RuleLoader = (*Loader)(nil)

//go:embed defaults
var defaultsFS embed.FS

// EmbeddedSource is the ReferenceData.Source of the built-in rules.
const EmbeddedSource = "embedded"

// File layout of a rules directory.
const (
	houseMeaningsFile  = "houses/meanings.yaml"
	planetMeaningsFile = "planets/meanings.yaml"
	yogasFile          = "yogas.yaml"
)

// topicFile returns the rule table path for a topic.
func topicFile(t domain.Topic) string {
	return path.Join("houses", string(t)+".yaml")
}

// YogaValidator checks yoga definitions once they are parsed.
type YogaValidator func([]domain.YogaDefinition) error

// Loader reads reference data from YAML files.
//
// Topic tables and yogas.yaml are required; the meanings files are optional.
type Loader struct {
	validate YogaValidator
	now      func() time.Time
}

// NewLoader creates a loader. validate may be nil.
func NewLoader(validate YogaValidator) *Loader {
	return &Loader{validate: validate, now: time.Now}
}

// Load reads a rules directory, or the embedded defaults when dir is empty.
func (l *Loader) Load(dir string) (*domain.ReferenceData, error) {
	if dir == "" {
		sub, err := fs.Sub(defaultsFS, "defaults")
		if err != nil {
			return nil, fmt.Errorf("open embedded rules: %w", err)
		}
		return l.LoadFS(sub, EmbeddedSource)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, domain.NewError("load rules", domain.KindConfiguration, "rules directory: %v", err)
	}
	if !info.IsDir() {
		return nil, domain.NewError("load rules", domain.KindConfiguration, "%s is not a directory", dir)
	}
	return l.LoadFS(os.DirFS(dir), dir)
}

// LoadFS reads reference data from any filesystem laid out like a rules directory.
func (l *Loader) LoadFS(fsys fs.FS, source string) (*domain.ReferenceData, error) {
	ref := &domain.ReferenceData{
		Rules:          make(domain.RuleSet, len(domain.AllTopics())),
		HouseMeanings:  map[int]string{},
		PlanetMeanings: map[domain.Planet]string{},
		Source:         source,
		LoadedAt:       l.now(),
	}

	for _, topic := range domain.AllTopics() {
		rules, err := loadTopic(fsys, topicFile(topic))
		if err != nil {
			return nil, err
		}
		ref.Rules[topic] = rules
	}

	houseMeanings, err := loadHouseMeanings(fsys)
	if err != nil {
		return nil, err
	}
	ref.HouseMeanings = houseMeanings

	planetMeanings, err := loadPlanetMeanings(fsys)
	if err != nil {
		return nil, err
	}
	ref.PlanetMeanings = planetMeanings

	yogas, err := loadYogas(fsys)
	if err != nil {
		return nil, err
	}
	if l.validate != nil {
		if err := l.validate(yogas); err != nil {
			return nil, fmt.Errorf("%s: %w", yogasFile, err)
		}
	}
	ref.Yogas = yogas

	return ref, nil
}

type rawRule struct {
	Positive []string `yaml:"planets_positive"`
	Negative []string `yaml:"planets_negative"`
}

type rawCondition struct {
	Kind    string   `yaml:"kind"`
	House   int      `yaml:"house"`
	Planets []string `yaml:"planets"`
}

type rawYoga struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Conditions  []rawCondition `yaml:"conditions"`
}

func loadTopic(fsys fs.FS, name string) (domain.TopicRules, error) {
	var raw map[int]rawRule
	if err := decodeFile(fsys, name, true, &raw); err != nil {
		return nil, err
	}

	rules := make(domain.TopicRules, len(raw))
	for house, r := range raw {
		if !domain.ValidHouse(house) {
			return nil, configError(name, "house %d out of range", house)
		}
		pos, err := parsePlanets(name, house, r.Positive)
		if err != nil {
			return nil, err
		}
		neg, err := parsePlanets(name, house, r.Negative)
		if err != nil {
			return nil, err
		}
		rules[domain.HouseKey(house)] = domain.PlanetRule{Positive: pos, Negative: neg}
	}
	return rules, nil
}

func loadHouseMeanings(fsys fs.FS) (map[int]string, error) {
	var raw map[int]string
	if err := decodeFile(fsys, houseMeaningsFile, false, &raw); err != nil {
		return nil, err
	}

	out := make(map[int]string, len(raw))
	for house, meaning := range raw {
		if !domain.ValidHouse(house) {
			return nil, configError(houseMeaningsFile, "house %d out of range", house)
		}
		out[house] = meaning
	}
	return out, nil
}

func loadPlanetMeanings(fsys fs.FS) (map[domain.Planet]string, error) {
	var raw map[string]string
	if err := decodeFile(fsys, planetMeaningsFile, false, &raw); err != nil {
		return nil, err
	}

	out := make(map[domain.Planet]string, len(raw))
	for name, meaning := range raw {
		p, err := domain.ParsePlanet(name)
		if err != nil {
			return nil, configError(planetMeaningsFile, "%v", err)
		}
		out[p] = meaning
	}
	return out, nil
}

func loadYogas(fsys fs.FS) ([]domain.YogaDefinition, error) {
	var raw []rawYoga
	if err := decodeFile(fsys, yogasFile, true, &raw); err != nil {
		return nil, err
	}

	defs := make([]domain.YogaDefinition, 0, len(raw))
	for _, y := range raw {
		def := domain.YogaDefinition{
			Name:        y.Name,
			Description: y.Description,
			Conditions:  make([]domain.Condition, 0, len(y.Conditions)),
		}
		for _, c := range y.Conditions {
			kind := domain.ConditionKind(c.Kind)
			if kind == "" {
				kind = domain.ConditionConjunction
			}
			planets := make([]domain.Planet, 0, len(c.Planets))
			for _, name := range c.Planets {
				p, err := domain.ParsePlanet(name)
				if err != nil {
					return nil, configError(yogasFile, "yoga %q: %v", y.Name, err)
				}
				planets = append(planets, p)
			}
			def.Conditions = append(def.Conditions, domain.Condition{
				Kind:    kind,
				House:   c.House,
				Planets: planets,
			})
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// decodeFile unmarshals one YAML file. Missing optional files leave out untouched.
func decodeFile(fsys fs.FS, name string, required bool, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return configError(name, "%v", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return configError(name, "%v", err)
	}
	return nil
}

func parsePlanets(file string, house int, names []string) ([]domain.Planet, error) {
	out := make([]domain.Planet, 0, len(names))
	for _, name := range names {
		p, err := domain.ParsePlanet(name)
		if err != nil {
			return nil, configError(file, "house %d: %v", house, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func configError(file, format string, args ...any) error {
	return domain.NewError("load rules", domain.KindConfiguration, file+": "+format, args...)
}
