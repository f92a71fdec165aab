package conditions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graha/internal/core/domain"
)

// stubEvaluator is a simple evaluator for testing registry functionality.
type stubEvaluator struct {
	kind   domain.ConditionKind
	result bool
}

func (s *stubEvaluator) Kind() domain.ConditionKind { return s.kind }
func (s *stubEvaluator) Validate(_ domain.Condition) error { return nil }
func (s *stubEvaluator) Evaluate(_ *domain.Chart, _ domain.Condition) bool { return s.result }

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.Empty(t, r.Kinds())
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubEvaluator{kind: "aspect", result: true})

	assert.True(t, r.Has("aspect"))
	assert.False(t, r.Has("lordship"))

	e, ok := r.Get("aspect")
	require.True(t, ok)
	assert.True(t, e.Evaluate(nil, domain.Condition{}))

	_, ok = r.Get("lordship")
	assert.False(t, ok)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubEvaluator{kind: "aspect", result: true})
	r.Register(&stubEvaluator{kind: "aspect", result: false})

	e, ok := r.Get("aspect")
	require.True(t, ok)
	assert.False(t, e.Evaluate(nil, domain.Condition{}))
	assert.Len(t, r.Kinds(), 1)
}

func TestRegistry_KindsSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubEvaluator{kind: "lordship"})
	r.Register(&stubEvaluator{kind: "aspect"})

	assert.Equal(t, []domain.ConditionKind{"aspect", "lordship"}, r.Kinds())
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.True(t, r.Has(domain.ConditionConjunction))
	assert.Equal(t, []domain.ConditionKind{domain.ConditionConjunction}, r.Kinds())
}
