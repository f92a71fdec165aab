package domain

import (
	"strconv"
	"time"
)

// Topic is a life area with its own house rule table.
type Topic string

// Supported topics.
const (
	TopicCareer       Topic = "career"
	TopicMarriage     Topic = "marriage"
	TopicWealth       Topic = "wealth"
	TopicSpirituality Topic = "spirituality"
)

// AllTopics returns the topics in report order.
func AllTopics() []Topic {
	return []Topic{TopicCareer, TopicMarriage, TopicWealth, TopicSpirituality}
}

// IsValid returns true if the topic is recognised.
func (t Topic) IsValid() bool {
	switch t {
	case TopicCareer, TopicMarriage, TopicWealth, TopicSpirituality:
		return true
	default:
		return false
	}
}

// String returns the topic name.
func (t Topic) String() string {
	return string(t)
}

// PlanetRule lists the planets that help or harm a house for a topic.
type PlanetRule struct {
	Positive []Planet `json:"positive"`
	Negative []Planet `json:"negative"`
}

// TopicRules maps a house key ("1".."12") to its rule.
type TopicRules map[string]PlanetRule

// RuleSet maps each topic to its house rules.
type RuleSet map[Topic]TopicRules

// HouseKey is the rule-table key for house n.
func HouseKey(n int) string {
	return strconv.Itoa(n)
}

// VerdictStatus distinguishes the three outcomes of a house evaluation.
type VerdictStatus string

// Verdict statuses. NoRule and NoInfluence are never interchangeable.
const (
	// VerdictNoRule means the rule table has no entry for the house.
	VerdictNoRule VerdictStatus = "no_rule"

	// VerdictNoInfluence means the rule exists but no listed planet is present.
	VerdictNoInfluence VerdictStatus = "no_influence"

	// VerdictInfluenced means at least one listed planet is present.
	VerdictInfluenced VerdictStatus = "influenced"
)

// HouseVerdict is the evaluation of one house under one topic.
type HouseVerdict struct {
	House    int           `json:"house"`
	Status   VerdictStatus `json:"status"`
	Positive []Planet      `json:"positive"`
	Negative []Planet      `json:"negative"`
	Meaning  string        `json:"meaning"`
}

// TopicVerdicts holds the twelve house verdicts for a topic.
type TopicVerdicts struct {
	Topic  Topic          `json:"topic"`
	Houses []HouseVerdict `json:"houses"`
}

// ReferenceData is a complete, immutable snapshot of the loaded rule files.
// Reloads build a new snapshot; an existing one is never modified.
type ReferenceData struct {
	Rules          RuleSet
	HouseMeanings  map[int]string
	PlanetMeanings map[Planet]string
	Yogas          []YogaDefinition
	Source         string
	LoadedAt       time.Time
}

// HouseMeaning returns the meaning of house n, or "".
func (r *ReferenceData) HouseMeaning(n int) string {
	if r == nil {
		return ""
	}
	return r.HouseMeanings[n]
}

// PlanetMeaning returns the meaning of p, or "".
func (r *ReferenceData) PlanetMeaning(p Planet) string {
	if r == nil {
		return ""
	}
	return r.PlanetMeanings[p]
}
