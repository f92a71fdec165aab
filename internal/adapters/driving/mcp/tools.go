package mcp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/graha/internal/adapters/driving/chartfile"
	"github.com/custodia-labs/graha/internal/core/domain"
)

// AnalyzeChartInput is the input schema for the analyze_chart tool.
type AnalyzeChartInput struct {
	Label     string              `json:"label,omitempty" jsonschema:"name for the chart"`
	Date      string              `json:"date" jsonschema:"birth date, YYYY-MM-DD"`
	Time      string              `json:"time,omitempty" jsonschema:"birth time, HH:MM (default midnight)"`
	Timezone  string              `json:"timezone,omitempty" jsonschema:"UTC offset such as +05:30 or an IANA zone name"`
	Place     string              `json:"place,omitempty" jsonschema:"birth place, geocoded when no coordinates are given"`
	Latitude  *float64            `json:"latitude,omitempty" jsonschema:"birth latitude in degrees"`
	Longitude *float64            `json:"longitude,omitempty" jsonschema:"birth longitude in degrees"`
	Nakshatra *int                `json:"nakshatra,omitempty" jsonschema:"birth nakshatra index 0-26, enables the dasha timeline"`
	LagnaLord string              `json:"lagna_lord,omitempty" jsonschema:"lord of the first house; switches to a manual chart"`
	Houses    map[string][]string `json:"houses,omitempty" jsonschema:"manual chart: planet names keyed by house number 1-12"`
	Signs     map[string]string   `json:"signs,omitempty" jsonschema:"manual chart: sign name keyed by planet name"`
	Ephemeris string              `json:"ephemeris,omitempty" jsonschema:"path of an ephemeris positions file"`
	Division  string              `json:"division,omitempty" jsonschema:"divisional chart code: D1, D9, D10 or D24"`
	AsOf      string              `json:"as_of,omitempty" jsonschema:"date for the current dasha, YYYY-MM-DD (default today)"`
}

// AnalyzeChartOutput is the output schema for the analyze_chart tool.
type AnalyzeChartOutput struct {
	ID           string             `json:"id"`
	Label        string             `json:"label"`
	Source       string             `json:"source"`
	Houses       []HouseOutput      `json:"houses"`
	Strengths    []StrengthOutput   `json:"strengths"`
	Aspects      []AspectOutput     `json:"aspects"`
	Yogas        []YogaOutput       `json:"yogas"`
	Verdicts     []VerdictOutput    `json:"verdicts"`
	Divisional   []DivisionalOutput `json:"divisional"`
	CurrentDasha *PeriodOutput      `json:"current_dasha,omitempty"`
	Warnings     []string           `json:"warnings"`
}

// HouseOutput is one house with its lord and occupants.
type HouseOutput struct {
	Number  int      `json:"number"`
	Lord    string   `json:"lord"`
	Planets []string `json:"planets"`
}

// StrengthOutput is a planet classification.
type StrengthOutput struct {
	Planet   string `json:"planet"`
	Sign     string `json:"sign"`
	Strength string `json:"strength"`
}

// AspectOutput lists the houses a planet aspects.
type AspectOutput struct {
	Planet string `json:"planet"`
	House  int    `json:"house"`
	Houses []int  `json:"aspected_houses"`
}

// YogaOutput is a detected yoga.
type YogaOutput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	House       int    `json:"house"`
}

// VerdictOutput is a topic verdict for one house. Status is no_rule when the
// topic table has no entry for the house, no_influence when it has one but no
// listed planet is present, and influenced otherwise.
type VerdictOutput struct {
	Topic    string   `json:"topic"`
	House    int      `json:"house"`
	Status   string   `json:"status"`
	Meaning  string   `json:"meaning,omitempty"`
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// DivisionalOutput is a planet's position in the divisional chart.
type DivisionalOutput struct {
	Planet string  `json:"planet"`
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
}

// PeriodOutput is one mahadasha period.
type PeriodOutput struct {
	Planet string `json:"planet"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Years  int    `json:"years"`
}

// CurrentDashaInput is the input schema for the current_dasha tool.
type CurrentDashaInput struct {
	Date      string `json:"date" jsonschema:"birth date, YYYY-MM-DD"`
	Time      string `json:"time,omitempty" jsonschema:"birth time, HH:MM"`
	Timezone  string `json:"timezone,omitempty" jsonschema:"UTC offset or IANA zone name"`
	Nakshatra int    `json:"nakshatra" jsonschema:"birth nakshatra index 0-26"`
	At        string `json:"at,omitempty" jsonschema:"date to locate, YYYY-MM-DD (default today)"`
}

// CurrentDashaOutput is the output schema for the current_dasha tool.
type CurrentDashaOutput struct {
	Current *PeriodOutput  `json:"current,omitempty"`
	Periods []PeriodOutput `json:"periods"`
}

// HouseLordsInput is the input schema for the house_lords tool.
type HouseLordsInput struct {
	LagnaLord string `json:"lagna_lord" jsonschema:"lord of the first house, e.g. Mars"`
}

// HouseLordsOutput is the output schema for the house_lords tool.
type HouseLordsOutput struct {
	Lords []HouseOutput `json:"lords"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_chart",
		Description: "Analyse a Vedic birth chart: house lords, strengths, aspects, yogas, topic verdicts and current mahadasha",
	}, s.handleAnalyzeChart)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "current_dasha",
		Description: "List the Vimshottari mahadasha periods from birth and the period containing a date",
	}, s.handleCurrentDasha)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "house_lords",
		Description: "Derive the lords of the twelve houses from the first-house lord",
	}, s.handleHouseLords)
}

// handleAnalyzeChart handles the analyze_chart tool invocation.
func (s *Server) handleAnalyzeChart(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeChartInput,
) (*mcp.CallToolResult, AnalyzeChartOutput, error) {
	req, err := s.chartRequest(input)
	if err != nil {
		return nil, AnalyzeChartOutput{}, err
	}

	report, err := s.ports.Chart.Analyze(ctx, req)
	if err != nil {
		return nil, AnalyzeChartOutput{}, err
	}
	return nil, reportOutput(report), nil
}

func (s *Server) chartRequest(input AnalyzeChartInput) (domain.ChartRequest, error) {
	spec := chartfile.Spec{
		Label: input.Label,
		Birth: chartfile.Birth{
			Date:      input.Date,
			Time:      input.Time,
			Timezone:  input.Timezone,
			Place:     input.Place,
			Latitude:  input.Latitude,
			Longitude: input.Longitude,
		},
		Nakshatra: input.Nakshatra,
		LagnaLord: input.LagnaLord,
		Signs:     input.Signs,
		Ephemeris: input.Ephemeris,
		Division:  input.Division,
	}
	if len(input.Houses) > 0 {
		spec.Houses = make(map[int][]string, len(input.Houses))
		for key, planets := range input.Houses {
			n, err := strconv.Atoi(key)
			if err != nil {
				return domain.ChartRequest{}, domain.NewError("analyze_chart", domain.KindValidation, "house key %q is not a number", key)
			}
			spec.Houses[n] = planets
		}
	}

	req, err := spec.Request(s.ports.DefaultTimezone)
	if err != nil {
		return domain.ChartRequest{}, err
	}
	req.AsOf, err = parseDate(input.AsOf)
	if err != nil {
		return domain.ChartRequest{}, err
	}
	return req, nil
}

// handleCurrentDasha handles the current_dasha tool invocation.
func (s *Server) handleCurrentDasha(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CurrentDashaInput,
) (*mcp.CallToolResult, CurrentDashaOutput, error) {
	tz := input.Timezone
	if tz == "" {
		tz = s.ports.DefaultTimezone
	}
	birth, err := domain.ParseBirth(input.Date, input.Time, tz, "")
	if err != nil {
		return nil, CurrentDashaOutput{}, err
	}

	timeline, err := s.ports.Chart.Timeline(birth.Time, input.Nakshatra)
	if err != nil {
		return nil, CurrentDashaOutput{}, err
	}

	at, err := parseDate(input.At)
	if err != nil {
		return nil, CurrentDashaOutput{}, err
	}
	if at.IsZero() {
		at = time.Now().In(birth.Time.Location())
	}

	output := CurrentDashaOutput{Periods: make([]PeriodOutput, len(timeline.Periods))}
	for i, p := range timeline.Periods {
		output.Periods[i] = periodOutput(p)
	}
	if p, ok := timeline.PeriodOn(at); ok {
		current := periodOutput(p)
		output.Current = &current
	}
	return nil, output, nil
}

// handleHouseLords handles the house_lords tool invocation.
func (s *Server) handleHouseLords(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input HouseLordsInput,
) (*mcp.CallToolResult, HouseLordsOutput, error) {
	first, err := domain.ParsePlanet(input.LagnaLord)
	if err != nil {
		return nil, HouseLordsOutput{}, err
	}
	lords, err := s.ports.Chart.HouseLords(first)
	if err != nil {
		return nil, HouseLordsOutput{}, err
	}

	output := HouseLordsOutput{Lords: make([]HouseOutput, len(lords))}
	for i, p := range lords {
		output.Lords[i] = HouseOutput{Number: i + 1, Lord: string(p), Planets: []string{}}
	}
	return nil, output, nil
}

func reportOutput(r *domain.Report) AnalyzeChartOutput {
	out := AnalyzeChartOutput{
		ID:         r.ID,
		Label:      r.Label,
		Source:     string(r.Source),
		Houses:     make([]HouseOutput, 0, len(r.Houses)),
		Strengths:  make([]StrengthOutput, 0, len(r.Strengths)),
		Aspects:    make([]AspectOutput, 0, len(r.HouseAspects)),
		Yogas:      make([]YogaOutput, 0, len(r.Yogas)),
		Verdicts:   []VerdictOutput{},
		Divisional: []DivisionalOutput{},
		Warnings:   append([]string{}, r.Warnings...),
	}

	for _, h := range r.Houses {
		out.Houses = append(out.Houses, HouseOutput{Number: h.Number, Lord: string(h.Lord), Planets: planetNames(h.Planets)})
	}
	for _, ps := range r.Strengths {
		out.Strengths = append(out.Strengths, StrengthOutput{Planet: string(ps.Planet), Sign: ps.Sign.String(), Strength: string(ps.Strength)})
	}
	for _, ha := range r.HouseAspects {
		out.Aspects = append(out.Aspects, AspectOutput{Planet: string(ha.Planet), House: ha.House, Houses: append([]int{}, ha.Houses...)})
	}
	for _, y := range r.Yogas {
		out.Yogas = append(out.Yogas, YogaOutput{Name: y.Name, Description: y.Description, House: y.House})
	}
	for _, tv := range r.Topics {
		for _, v := range tv.Houses {
			out.Verdicts = append(out.Verdicts, VerdictOutput{
				Topic:    string(tv.Topic),
				House:    v.House,
				Status:   string(v.Status),
				Meaning:  v.Meaning,
				Positive: planetNames(v.Positive),
				Negative: planetNames(v.Negative),
			})
		}
	}
	if r.Divisional != nil {
		for _, pos := range r.Divisional.Positions {
			if pos.Err != nil {
				continue
			}
			out.Divisional = append(out.Divisional, DivisionalOutput{Planet: string(pos.Planet), Sign: pos.Sign.String(), Degree: pos.DegreeInSign})
		}
	}
	if r.CurrentDasha != nil {
		p := periodOutput(*r.CurrentDasha)
		out.CurrentDasha = &p
	}
	return out
}

func periodOutput(p domain.DashaPeriod) PeriodOutput {
	return PeriodOutput{
		Planet: string(p.Planet),
		Start:  p.Start.Format(domain.DateLayout),
		End:    p.End.Format(domain.DateLayout),
		Years:  p.Years,
	}
}

func planetNames(ps []domain.Planet) []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return names
}

// parseDate parses a YYYY-MM-DD calendar date. Only its year, month and day
// are used for dasha lookups.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}
