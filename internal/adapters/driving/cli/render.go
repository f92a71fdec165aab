package cli

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/graha/internal/adapters/driving/styles"
	"github.com/custodia-labs/graha/internal/core/domain"
)

var reportStyles = styles.DefaultStyles()

// renderReport formats a report for the terminal.
func renderReport(r *domain.Report) string {
	st := reportStyles
	var b strings.Builder

	title := r.Label
	if title == "" {
		title = "Chart"
	}
	b.WriteString(st.Title.Render(title))
	if r.ID != "" {
		b.WriteString(st.Muted.Render(fmt.Sprintf("  [%s]", shortID(r.ID))))
	}
	b.WriteString("\n")

	if r.Birth != nil {
		line := fmt.Sprintf("Born %s (%s)", r.Birth.Time.Format("2006-01-02 15:04"), r.Birth.Timezone)
		if r.Birth.Place != "" {
			line += " in " + r.Birth.Place
		}
		b.WriteString(st.Normal.Render(line) + "\n")
	}
	if c := r.Coordinates; c != nil {
		loc := fmt.Sprintf("Location %.4f, %.4f", c.Latitude, c.Longitude)
		if c.Fallback {
			loc += " (fallback)"
		}
		b.WriteString(st.Muted.Render(loc) + "\n")
	}
	b.WriteString(st.Muted.Render("Positions: "+string(r.Source)) + "\n")

	section(&b, "Houses")
	for _, h := range r.Houses {
		lord := string(h.Lord)
		if lord == "" {
			lord = "?"
		}
		occupants := st.Muted.Render("-")
		if len(h.Planets) > 0 {
			occupants = st.Normal.Render(planetList(h.Planets))
		}
		fmt.Fprintf(&b, "  %2d  %s %s\n", h.Number, st.Label.Render(fmt.Sprintf("%-8s", lord)), occupants)
	}

	strengths := make(map[domain.Planet]domain.Strength, len(r.Strengths))
	for _, ps := range r.Strengths {
		strengths[ps.Planet] = ps.Strength
	}

	section(&b, "Planets")
	for _, pp := range r.Placements {
		name := fmt.Sprintf("%-8s", pp.Planet)
		if pp.Source == domain.PlacementFailed {
			fmt.Fprintf(&b, "  %s %s\n", name, st.Warning.Render(fmt.Sprintf("unavailable: %v", pp.Err)))
			continue
		}
		sign := "-"
		if pp.HasSign() {
			sign = pp.Sign.String()
		}
		degree := ""
		if pos, ok := pp.Position(); ok {
			degree = fmt.Sprintf("%6.2f°", pos.DegreeInSign())
		}
		line := fmt.Sprintf("  %s %-12s %7s  house %2d", name, sign, degree, pp.House)
		if s, ok := strengths[pp.Planet]; ok {
			line += "  " + st.Strength(s).Render(strings.ReplaceAll(string(s), "_", " "))
		}
		b.WriteString(line + "\n")
	}

	if d := r.Divisional; d != nil {
		section(&b, fmt.Sprintf("Divisional chart %s", d.Code))
		for _, pos := range d.Positions {
			if pos.Err != nil {
				fmt.Fprintf(&b, "  %-8s %s\n", pos.Planet, st.Muted.Render("-"))
				continue
			}
			fmt.Fprintf(&b, "  %-8s %-12s %6.2f°\n", pos.Planet, pos.Sign, pos.DegreeInSign)
		}
	}

	if len(r.HouseAspects) > 0 {
		section(&b, "Aspects")
		for _, ha := range r.HouseAspects {
			fmt.Fprintf(&b, "  %-8s from house %2d aspects houses %s\n", ha.Planet, ha.House, intList(ha.Houses))
		}
		for _, da := range r.Conjunctions {
			fmt.Fprintf(&b, "  %s %s %s %s\n", da.A, da.Kind, da.B, st.Muted.Render(fmt.Sprintf("(%.2f°)", da.Deviation)))
		}
	}

	section(&b, "Yogas")
	if len(r.Yogas) == 0 {
		b.WriteString("  " + st.Muted.Render("none") + "\n")
	}
	for _, y := range r.Yogas {
		fmt.Fprintf(&b, "  %s %s\n", st.Positive.Render(y.Name), st.Muted.Render(fmt.Sprintf("(house %d)", y.House)))
		if y.Description != "" {
			b.WriteString("    " + y.Description + "\n")
		}
	}

	if len(r.Timeline) > 0 {
		section(&b, "Mahadasha")
		for _, p := range r.Timeline {
			line := fmt.Sprintf("  %-8s %s to %s  %3d years", p.Planet, p.Start.Format(domain.DateLayout), p.End.Format(domain.DateLayout), p.Years)
			if r.CurrentDasha != nil && r.CurrentDasha.Planet == p.Planet && r.CurrentDasha.Start.Equal(p.Start) {
				line = st.Positive.Render(line + "  <- current")
			}
			b.WriteString(line + "\n")
		}
	}

	section(&b, "Topics")
	for _, tv := range r.Topics {
		b.WriteString("  " + st.Label.Render(string(tv.Topic)) + "\n")
		var noRule, noInfluence []int
		for _, v := range tv.Houses {
			switch v.Status {
			case domain.VerdictNoRule:
				noRule = append(noRule, v.House)
				continue
			case domain.VerdictNoInfluence:
				noInfluence = append(noInfluence, v.House)
				continue
			}
			text := fmt.Sprintf("house %d: %s", v.House, verdictText(v))
			if v.Meaning != "" {
				text += " " + st.Muted.Render("("+v.Meaning+")")
			}
			b.WriteString("    " + st.Verdict(v).Render(text) + "\n")
		}
		if len(noInfluence) > 0 {
			b.WriteString("    " + st.Muted.Render("no influence: houses "+intList(noInfluence)) + "\n")
		}
		if len(noRule) > 0 {
			b.WriteString("    " + st.Muted.Render("no rule: houses "+intList(noRule)) + "\n")
		}
	}

	if len(r.Warnings) > 0 {
		section(&b, "Warnings")
		for _, w := range r.Warnings {
			b.WriteString("  " + st.Warning.Render(w) + "\n")
		}
	}

	return b.String()
}

func section(b *strings.Builder, name string) {
	b.WriteString("\n" + reportStyles.Heading.Render(name) + "\n")
}

func verdictText(v domain.HouseVerdict) string {
	var parts []string
	if len(v.Positive) > 0 {
		parts = append(parts, "+"+planetList(v.Positive))
	}
	if len(v.Negative) > 0 {
		parts = append(parts, "-"+planetList(v.Negative))
	}
	return strings.Join(parts, " ")
}

func planetList(ps []domain.Planet) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func intList(xs []int) string {
	s := make([]string, len(xs))
	for i, x := range xs {
		s[i] = fmt.Sprint(x)
	}
	return strings.Join(s, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
