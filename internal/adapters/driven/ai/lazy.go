package ai

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
)

// LazyLLMService wraps an LLM service and checks it answers on first use
// instead of at construction. A failed check is retried on the next call.
type LazyLLMService struct {
	svc driven.LLMService

	mu        sync.Mutex
	validated bool
}

// NewLazyLLMService creates the LLM service named by settings without
// contacting it. Returns nil if the provider is not configured.
func NewLazyLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'graha settings llm' to fix", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}
	return &LazyLLMService{svc: svc}, nil
}

func (l *LazyLLMService) ensure(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.validated {
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := l.svc.Ping(pingCtx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w). Run 'graha settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}
	l.validated = true
	return nil
}

// Chat checks the service on first use, then sends the conversation.
func (l *LazyLLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := l.ensure(ctx); err != nil {
		return "", err
	}
	return l.svc.Chat(ctx, messages, opts)
}

// ModelName returns the wrapped service's model.
func (l *LazyLLMService) ModelName() string {
	return l.svc.ModelName()
}

// Ping checks the service answers.
func (l *LazyLLMService) Ping(ctx context.Context) error {
	return l.ensure(ctx)
}

func (l *LazyLLMService) Close() error {
	return l.svc.Close()
}
