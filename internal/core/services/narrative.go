package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
	"github.com/custodia-labs/graha/internal/core/ports/driving"
	"github.com/custodia-labs/graha/internal/logger"
)

// Ensure NarrativeService implements the interface.
var _ driving.NarrativeService = (*NarrativeService)(nil)

// Default prompt text used when no prompt store is configured.
const (
	defaultNarrativeSystem = "You are an expert Vedic astrologer AI.\n" +
		"The user has provided the following birth chart data:"
	defaultNarrativeQuestion = "Answer the following user question based on this chart and your knowledge of Vedic astrology:\n" +
		"Question: %s\n" +
		"Provide detailed and reasoned astrological prediction referencing the planets, houses, aspects, exaltation, and debilitation."
)

// narrativeMaxTokens bounds LLM answers.
const narrativeMaxTokens = 1024

// NarrativeService builds LLM prompts from reports and renders plain-text explanations.
type NarrativeService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	log     *logger.Logger
}

// NewNarrativeService creates a narrative service.
// llmService and prompts are optional (can be nil).
func NewNarrativeService(llmService driven.LLMService, prompts driven.PromptStore, log *logger.Logger) *NarrativeService {
	return &NarrativeService{llm: llmService, prompts: prompts, log: log}
}

// Available reports whether an LLM is configured.
func (s *NarrativeService) Available() bool {
	return s.llm != nil
}

// BuildPrompt renders the prompt for a report and a question as one text.
func (s *NarrativeService) BuildPrompt(report *domain.Report, question string) (string, error) {
	messages, err := s.buildMessages(report, question)
	if err != nil {
		return "", err
	}
	return messages[0].Content + "\n" + messages[1].Content, nil
}

// buildMessages returns a system turn carrying the chart data and a user
// turn carrying the question.
func (s *NarrativeService) buildMessages(report *domain.Report, question string) ([]driven.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.NewError("build prompt", domain.KindValidation, "question is empty")
	}
	if report == nil {
		return nil, domain.NewError("build prompt", domain.KindValidation, "report is required")
	}

	system := s.loadPrompt(driven.PromptNarrativeSystem, defaultNarrativeSystem)
	questionTmpl := s.loadPrompt(driven.PromptNarrativeQuestion, defaultNarrativeQuestion)
	if strings.Count(questionTmpl, "%s") != 1 {
		s.log.Warn("prompt %q must contain exactly one %%s, using default", driven.PromptNarrativeQuestion)
		questionTmpl = defaultNarrativeQuestion
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(system, "\n"))
	b.WriteString("\n\n")

	aspected := make(map[domain.Planet][]int, len(report.HouseAspects))
	for _, ha := range report.HouseAspects {
		aspected[ha.Planet] = ha.Houses
	}

	for _, h := range report.Houses {
		lord := string(h.Lord)
		if lord == "" {
			lord = "Unknown"
		}
		fmt.Fprintf(&b, "House %d: Lord is %s, Planets present: %s\n", h.Number, lord, joinPlanets(h.Planets, "No planets"))
		for _, p := range h.Planets {
			fmt.Fprintf(&b, "  - %s is exalted in %s and debilitated in %s\n", p, signOrUnknown(domain.ExaltationSign(p)), signOrUnknown(domain.DebilitationSign(p)))
		}
		for _, p := range h.Planets {
			fmt.Fprintf(&b, "  - %s aspects houses: %s\n", p, joinInts(aspected[p]))
		}
	}

	if len(report.Strengths) > 0 {
		b.WriteString("\nPlanetary strengths:\n")
		for _, ps := range report.Strengths {
			fmt.Fprintf(&b, "  - %s in %s: %s\n", ps.Planet, ps.Sign, strings.ReplaceAll(string(ps.Strength), "_", " "))
		}
	}

	names := make([]string, 0, len(report.Yogas))
	for _, y := range report.Yogas {
		names = append(names, y.Name)
	}
	if len(names) == 0 {
		names = append(names, "None")
	}
	fmt.Fprintf(&b, "\nYogas present: %s\n", strings.Join(names, ", "))

	if d := report.CurrentDasha; d != nil {
		fmt.Fprintf(&b, "Current Mahadasha: %s (%s to %s)\n", d.Planet, d.Start.Format(domain.DateLayout), d.End.Format(domain.DateLayout))
	}

	if len(report.Topics) > 0 {
		b.WriteString("\nTopic analysis:\n")
		for _, tv := range report.Topics {
			for _, line := range topicLines(tv) {
				b.WriteString("  - " + line + "\n")
			}
		}
	}

	return []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: b.String()},
		{Role: driven.RoleUser, Content: fmt.Sprintf(questionTmpl, question)},
	}, nil
}

// Ask sends the chart and the question to the LLM and returns the reply, trimmed.
func (s *NarrativeService) Ask(ctx context.Context, report *domain.Report, question string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	messages, err := s.buildMessages(report, question)
	if err != nil {
		return "", err
	}

	s.log.Section("Narrative")
	s.log.Debug("Model: %s, chart context: %d chars", s.llm.ModelName(), len(messages[0].Content))

	answer, err := s.llm.Chat(ctx, messages, driven.ChatOptions{MaxTokens: narrativeMaxTokens, Temperature: 0.7})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// RenderText renders a deterministic explanation of a report.
func (s *NarrativeService) RenderText(report *domain.Report) string {
	if report == nil {
		return ""
	}

	var sections []string

	var lines []string
	for _, ps := range report.Strengths {
		lines = append(lines, strengthSentence(ps))
	}
	sections = append(sections, "=== Planetary Strengths ===\n"+joinOr(lines, "No planet has a known sign."))

	lines = lines[:0]
	for _, y := range report.Yogas {
		if y.Description != "" {
			lines = append(lines, fmt.Sprintf("%s is present in the chart: %s", y.Name, y.Description))
		} else {
			lines = append(lines, fmt.Sprintf("%s is present in the chart, which brings special results.", y.Name))
		}
	}
	sections = append(sections, "=== Yogas ===\n"+joinOr(lines, "No yogas detected."))

	dasha := "Current Mahadasha: Unknown"
	if d := report.CurrentDasha; d != nil {
		dasha = fmt.Sprintf("Current Mahadasha: %s, from %s to %s", d.Planet, d.Start.Format(domain.DateLayout), d.End.Format(domain.DateLayout))
	}
	sections = append(sections, "=== Current Dasha ===\n"+dasha)

	lines = lines[:0]
	for _, tv := range report.Topics {
		lines = append(lines, topicLines(tv)...)
	}
	sections = append(sections, "=== House Analysis ===\n"+joinOr(lines, "No significant planetary influence."))

	if len(report.Warnings) > 0 {
		sections = append(sections, "=== Warnings ===\n"+strings.Join(report.Warnings, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

// VerdictText describes a house verdict in a sentence.
func VerdictText(v domain.HouseVerdict) string {
	switch v.Status {
	case domain.VerdictNoRule:
		return "No specific rules"
	case domain.VerdictNoInfluence:
		return "No significant planetary influence"
	}
	var parts []string
	if len(v.Positive) > 0 {
		parts = append(parts, fmt.Sprintf("Positive influence: %s.", joinPlanets(v.Positive, "")))
	}
	if len(v.Negative) > 0 {
		parts = append(parts, fmt.Sprintf("Negative influence: %s.", joinPlanets(v.Negative, "")))
	}
	return strings.Join(parts, " ")
}

// topicLines describes one topic: a line per influenced house, then the
// houses whose rule matched nothing, then the houses the table has no rule for.
func topicLines(tv domain.TopicVerdicts) []string {
	topic := titleCase(string(tv.Topic))
	var lines []string
	var noRule, noInfluence []int
	for _, v := range tv.Houses {
		switch v.Status {
		case domain.VerdictNoRule:
			noRule = append(noRule, v.House)
		case domain.VerdictNoInfluence:
			noInfluence = append(noInfluence, v.House)
		default:
			lines = append(lines, fmt.Sprintf("%s (house %d): %s", topic, v.House, VerdictText(v)))
		}
	}
	if len(noInfluence) > 0 {
		lines = append(lines, fmt.Sprintf("%s (%s %s): %s", topic, houseWord(noInfluence), joinInts(noInfluence),
			VerdictText(domain.HouseVerdict{Status: domain.VerdictNoInfluence})))
	}
	if len(noRule) > 0 {
		lines = append(lines, fmt.Sprintf("%s (%s %s): %s", topic, houseWord(noRule), joinInts(noRule),
			VerdictText(domain.HouseVerdict{Status: domain.VerdictNoRule})))
	}
	return lines
}

func houseWord(houses []int) string {
	if len(houses) == 1 {
		return "house"
	}
	return "houses"
}

func strengthSentence(ps domain.PlanetStrength) string {
	switch ps.Strength {
	case domain.StrengthExalted:
		return fmt.Sprintf("%s is exalted in %s and provides strong positive influence.", ps.Planet, ps.Sign)
	case domain.StrengthOwnSign:
		return fmt.Sprintf("%s is in its own sign %s and is well-placed.", ps.Planet, ps.Sign)
	case domain.StrengthDebilitated:
		return fmt.Sprintf("%s is debilitated in %s; challenges may arise.", ps.Planet, ps.Sign)
	default:
		return fmt.Sprintf("%s has neutral influence in %s.", ps.Planet, ps.Sign)
	}
}

func (s *NarrativeService) loadPrompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	p, err := s.prompts.Load(name)
	if err != nil || strings.TrimSpace(p) == "" {
		s.log.Warn("prompt %q unavailable, using default: %v", name, err)
		return fallback
	}
	return p
}

func joinPlanets(ps []domain.Planet, empty string) string {
	if len(ps) == 0 {
		return empty
	}
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func joinInts(xs []int) string {
	s := make([]string, len(xs))
	for i, x := range xs {
		s[i] = fmt.Sprint(x)
	}
	return strings.Join(s, ", ")
}

func joinOr(lines []string, empty string) string {
	if len(lines) == 0 {
		return empty
	}
	return strings.Join(lines, "\n")
}

func signOrUnknown(s domain.Sign, ok bool) string {
	if !ok {
		return "Unknown"
	}
	return s.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
