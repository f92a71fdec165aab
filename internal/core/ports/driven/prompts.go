package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names are an error.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names.
const (
	// PromptNarrativeSystem introduces the assistant before the chart summary.
	// No placeholders.
	PromptNarrativeSystem = "narrative_system"

	// PromptNarrativeQuestion follows the chart summary.
	// The template expects a single %s placeholder for the user's question.
	PromptNarrativeQuestion = "narrative_question"
)
