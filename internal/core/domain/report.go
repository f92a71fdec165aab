package domain

import "time"

// Report is the immutable result of analysing a chart.
// Every field is always serialised; sub-analyses that did not run are
// null (pointers) or empty lists, so the JSON shape never changes.
type Report struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	GeneratedAt time.Time `json:"generated_at"`

	Birth       *BirthData      `json:"birth"`
	Coordinates *Coordinates    `json:"coordinates"`
	Source      PlacementSource `json:"source"`

	Houses       []House           `json:"houses"`
	Placements   []PlanetPlacement `json:"placements"`
	Divisional   *DivisionalChart  `json:"divisional"`
	Topics       []TopicVerdicts   `json:"topics"`
	Strengths    []PlanetStrength  `json:"strengths"`
	Aspects      []AspectRelation  `json:"aspects"`
	HouseAspects []HouseAspect     `json:"house_aspects"`
	Conjunctions []DegreeAspect    `json:"degree_aspects"`
	Yogas        []DetectedYoga    `json:"yogas"`
	CurrentDasha *DashaPeriod      `json:"current_dasha"`
	Timeline     []DashaPeriod     `json:"dasha_timeline"`
	Warnings     []string          `json:"warnings"`
}

// Topic returns the verdicts for a topic.
func (r *Report) Topic(t Topic) (TopicVerdicts, bool) {
	for _, tv := range r.Topics {
		if tv.Topic == t {
			return tv, true
		}
	}
	return TopicVerdicts{}, false
}

// House returns house n of the report.
func (r *Report) House(n int) (House, bool) {
	for _, h := range r.Houses {
		if h.Number == n {
			return h, true
		}
	}
	return House{}, false
}

// HasYoga reports whether the named yoga was detected.
func (r *Report) HasYoga(name string) bool {
	for _, y := range r.Yogas {
		if y.Name == name {
			return true
		}
	}
	return false
}

// ReportSummary is a history listing entry.
type ReportSummary struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}
