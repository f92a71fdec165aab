package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent analysis failures.
// These are distinct from infrastructure errors.
var (
	// ErrValidation indicates malformed date, time, place or planet input at the core boundary.
	// Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrMissingRule indicates a house or topic is absent from a rule table.
	// It is non-fatal: evaluators degrade to an explicit "no rule" verdict.
	ErrMissingRule = errors.New("no rule")

	// ErrEphemeris indicates a single planet's position could not be computed.
	// The planet is tagged with the error and all other analysis proceeds.
	ErrEphemeris = errors.New("ephemeris failure")

	// ErrConfiguration indicates an unknown division code, condition kind,
	// or an unrecognised planet/sign name in reference data.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Narrative answers are disabled; deterministic reports still work.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEphemerisUnavailable indicates no ephemeris provider is configured
	// for a chart that has no manual house assignment.
	ErrEphemerisUnavailable = errors.New("ephemeris provider unavailable")
)

// ErrorKind is a coarse-grained categorisation for errors.
type ErrorKind string

// Error kinds, one per sentinel in the taxonomy.
const (
	KindValidation    ErrorKind = "validation"
	KindMissingRule   ErrorKind = "missing_rule"
	KindEphemeris     ErrorKind = "ephemeris"
	KindConfiguration ErrorKind = "configuration"
)

var kindSentinels = map[ErrorKind]error{
	KindValidation:    ErrValidation,
	KindMissingRule:   ErrMissingRule,
	KindEphemeris:     ErrEphemeris,
	KindConfiguration: ErrConfiguration,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

// NewError builds an OpError with a formatted message as its cause.
func NewError(op string, kind ErrorKind, format string, args ...any) *OpError {
	return &OpError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel of its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// IsKind helps callers classify errors without depending on adapter packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
