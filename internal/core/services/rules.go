package services

import (
	"github.com/custodia-labs/graha/internal/core/domain"
)

// RuleEvaluator applies topic rule tables and dignity tables to a chart.
type RuleEvaluator struct {
	tables domain.StrengthTables
}

// NewRuleEvaluator creates an evaluator with the classical dignity tables.
func NewRuleEvaluator() *RuleEvaluator {
	return NewRuleEvaluatorWithTables(domain.DefaultStrengthTables())
}

// NewRuleEvaluatorWithTables creates an evaluator with custom dignity tables.
func NewRuleEvaluatorWithTables(tables domain.StrengthTables) *RuleEvaluator {
	return &RuleEvaluator{tables: tables}
}

// LookupRule returns the rule for a house. A missing entry is a
// MissingRule error, which callers treat as non-fatal.
func (r *RuleEvaluator) LookupRule(rules domain.TopicRules, house int) (domain.PlanetRule, error) {
	rule, ok := rules[domain.HouseKey(house)]
	if !ok {
		return domain.PlanetRule{}, domain.NewError("lookup rule", domain.KindMissingRule, "no rule for house %d", house)
	}
	return rule, nil
}

// EvaluateHouse intersects the house occupants with the rule's planet sets.
// A missing rule yields VerdictNoRule; a rule with no matching planet yields
// VerdictNoInfluence.
func (r *RuleEvaluator) EvaluateHouse(rules domain.TopicRules, house int, present []domain.Planet) domain.HouseVerdict {
	v := domain.HouseVerdict{
		House:    house,
		Positive: []domain.Planet{},
		Negative: []domain.Planet{},
	}

	rule, err := r.LookupRule(rules, house)
	if err != nil {
		v.Status = domain.VerdictNoRule
		return v
	}

	occupants := domain.NewPlanetSet(present...)
	v.Positive = occupants.Intersect(rule.Positive)
	v.Negative = occupants.Intersect(rule.Negative)

	if len(v.Positive) == 0 && len(v.Negative) == 0 {
		v.Status = domain.VerdictNoInfluence
	} else {
		v.Status = domain.VerdictInfluenced
	}
	return v
}

// EvaluateTopic evaluates all twelve houses of a chart for one topic.
// House meanings are attached when ref carries them.
func (r *RuleEvaluator) EvaluateTopic(
	ref *domain.ReferenceData, topic domain.Topic, chart *domain.Chart,
) domain.TopicVerdicts {
	var rules domain.TopicRules
	if ref != nil {
		rules = ref.Rules[topic]
	}

	tv := domain.TopicVerdicts{Topic: topic, Houses: make([]domain.HouseVerdict, 0, domain.HouseCount)}
	for h := 1; h <= domain.HouseCount; h++ {
		v := r.EvaluateHouse(rules, h, chart.PlanetsInHouse(h))
		v.Meaning = ref.HouseMeaning(h)
		tv.Houses = append(tv.Houses, v)
	}
	return tv
}

// EvaluateAll evaluates every topic in report order.
func (r *RuleEvaluator) EvaluateAll(ref *domain.ReferenceData, chart *domain.Chart) []domain.TopicVerdicts {
	out := make([]domain.TopicVerdicts, 0, len(domain.AllTopics()))
	for _, t := range domain.AllTopics() {
		out = append(out, r.EvaluateTopic(ref, t, chart))
	}
	return out
}

// Classify returns the dignity of a planet in a sign.
// Priority is exalted, then debilitated, then own sign, then neutral.
func (r *RuleEvaluator) Classify(p domain.Planet, sign domain.Sign) domain.Strength {
	if s, ok := r.tables.Exaltation[p]; ok && s == sign {
		return domain.StrengthExalted
	}
	if s, ok := r.tables.Debilitation[p]; ok && s == sign {
		return domain.StrengthDebilitated
	}
	for _, s := range r.tables.OwnSigns[p] {
		if s == sign {
			return domain.StrengthOwnSign
		}
	}
	return domain.StrengthNeutral
}

// Strengths classifies every planet whose sign is known, in canonical order.
func (r *RuleEvaluator) Strengths(chart *domain.Chart) []domain.PlanetStrength {
	out := make([]domain.PlanetStrength, 0, len(chart.Placements))
	for _, pp := range chart.OrderedPlacements() {
		if !pp.HasSign() {
			continue
		}
		out = append(out, domain.PlanetStrength{
			Planet:   pp.Planet,
			Sign:     pp.Sign,
			Strength: r.Classify(pp.Planet, pp.Sign),
		})
	}
	return out
}
