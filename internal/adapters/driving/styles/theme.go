// Package styles provides the colour theme for terminal reports.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// Theme defines the colour palette for report output.
type Theme struct {
	// Primary is used for report titles.
	Primary lipgloss.Color

	// Secondary is used for section headings and own-sign planets.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for labels and empty values.
	Muted lipgloss.Color

	// Success marks exalted planets and positive influence.
	Success lipgloss.Color

	// Warning marks report warnings.
	Warning lipgloss.Color

	// Error marks debilitated planets and negative influence.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles for reports.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Heading  lipgloss.Style
	Label    lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Warning  lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Heading: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(theme.Secondary),

		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Positive: lipgloss.NewStyle().
			Foreground(theme.Success),

		Negative: lipgloss.NewStyle().
			Foreground(theme.Error),

		Warning: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Warning),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Strength returns the style for a planet classification.
func (s *Styles) Strength(st domain.Strength) lipgloss.Style {
	switch st {
	case domain.StrengthExalted:
		return s.Positive.Bold(true)
	case domain.StrengthOwnSign:
		return lipgloss.NewStyle().Foreground(s.theme.Secondary)
	case domain.StrengthDebilitated:
		return s.Negative.Bold(true)
	default:
		return s.Normal
	}
}

// Verdict returns the style for a house verdict.
// Mixed verdicts, with both positive and negative planets, use the warning colour.
func (s *Styles) Verdict(v domain.HouseVerdict) lipgloss.Style {
	switch {
	case v.Status != domain.VerdictInfluenced:
		return s.Muted
	case len(v.Positive) > 0 && len(v.Negative) > 0:
		return s.Warning
	case len(v.Negative) > 0:
		return s.Negative
	default:
		return s.Positive
	}
}
