package driving

import (
	"context"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// NarrativeService turns reports into text.
type NarrativeService interface {
	// BuildPrompt renders the LLM prompt for a report and question.
	BuildPrompt(report *domain.Report, question string) (string, error)

	// Ask sends the prompt to the LLM and returns its completion unparsed.
	// Returns domain.ErrLLMUnavailable when no LLM is configured.
	Ask(ctx context.Context, report *domain.Report, question string) (string, error)

	// RenderText renders a deterministic plain-language explanation of a report.
	RenderText(report *domain.Report) string

	// Available reports whether an LLM is configured.
	Available() bool
}
