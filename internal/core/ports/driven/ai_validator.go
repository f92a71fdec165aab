package driven

import "github.com/custodia-labs/graha/internal/core/domain"

// AIConfigValidator checks that configured LLM credentials work before they
// are saved. An unconfigured provider is valid.
type AIConfigValidator interface {
	ValidateLLM(config *domain.LLMSettings) error
}
