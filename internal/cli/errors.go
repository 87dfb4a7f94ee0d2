package cli

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// NotFoundError indicates a problem or result was not found.
type NotFoundError struct {
	Type string // "problem" or "result"
	ID   string // the name that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.ID)
}

// AmbiguousError indicates a name prefix matched more than one name.
type AmbiguousError struct {
	Type    string
	Prefix  string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s %q matches: %s", e.Type, e.Prefix, strings.Join(e.Matches, ", "))
}

// ValidationError indicates a validation failure.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
// Aggregated errors are printed one per line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	errs := multierr.Errors(err)
	if len(errs) <= 1 {
		return "error: " + err.Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "error: %d problems:", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}
