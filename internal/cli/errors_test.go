package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Type: "problem", ID: "march"}
	assert.Equal(t, "problem march not found", err.Error())

	assert.True(t, IsNotFound(fmt.Errorf("load: %w", err)))
	assert.False(t, IsNotFound(errors.New("problem march not found")))
}

func TestAmbiguousError(t *testing.T) {
	err := &AmbiguousError{Type: "problem", Prefix: "ma", Matches: []string{"march", "may"}}
	assert.Equal(t, `ambiguous problem "ma" matches: march, may`, err.Error())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "max-cycle-length", Message: "must be at least 1"}
	assert.Equal(t, "invalid max-cycle-length: must be at least 1", err.Error())

	err = &ValidationError{Message: "problem name is required"}
	assert.Equal(t, "problem name is required", err.Error())
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "", FormatError(nil))
	assert.Equal(t, "error: something went wrong", FormatError(errors.New("something went wrong")))
	assert.Equal(t, "error: problem march not found", FormatError(&NotFoundError{Type: "problem", ID: "march"}))

	combined := multierr.Combine(errors.New("bad solver"), errors.New("bad log level"))
	assert.Equal(t, "error: 2 problems:\n  - bad solver\n  - bad log level", FormatError(combined))
}
