package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrValidation", ErrValidation},
		{"ErrMissingRule", ErrMissingRule},
		{"ErrEphemeris", ErrEphemeris},
		{"ErrConfiguration", ErrConfiguration},
		{"ErrNotFound", ErrNotFound},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEphemerisUnavailable", ErrEphemerisUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrValidation,
		ErrMissingRule,
		ErrEphemeris,
		ErrConfiguration,
		ErrNotFound,
		ErrLLMUnavailable,
		ErrEphemerisUnavailable,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

func TestOpError_IsMatchesSentinelOfKind(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		sentinel error
	}{
		{KindValidation, ErrValidation},
		{KindMissingRule, ErrMissingRule},
		{KindEphemeris, ErrEphemeris},
		{KindConfiguration, ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := NewError("op", tt.kind, "detail %d", 1)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.True(t, IsKind(err, tt.kind))

			wrapped := fmt.Errorf("outer: %w", err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
			assert.True(t, IsKind(wrapped, tt.kind))
		})
	}
}

func TestOpError_DoesNotMatchOtherKinds(t *testing.T) {
	err := NewError("parse planet", KindValidation, "bad")

	assert.False(t, errors.Is(err, ErrConfiguration))
	assert.False(t, IsKind(err, KindConfiguration))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}

func TestOpError_Message(t *testing.T) {
	err := NewError("parse sign", KindValidation, "invalid sign: %q", "Foo")
	assert.Equal(t, `parse sign: validation: invalid sign: "Foo"`, err.Error())

	var nilErr *OpError
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestOpError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &OpError{Op: "load", Kind: KindConfiguration, Err: cause}

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrConfiguration))
}
