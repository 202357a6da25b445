package annotations

import (
	"fmt"
	"strings"
)

// SyntaxError represents a declaration that does not match the grammar
type SyntaxError struct {
	Raw     string         // The offending declaration text
	Loc     SourceLocation // Where the error occurred
	Message string
	Cause   error
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s: %s '%s'", e.Loc, e.Message, strings.TrimSpace(e.Raw))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying participle error
func (e *SyntaxError) Unwrap() error { return e.Cause }

// Location returns where the error occurred
func (e *SyntaxError) Location() SourceLocation { return e.Loc }

// SyntaxErrors collects the errors of several declarations
type SyntaxErrors []*SyntaxError

func (e SyntaxErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = fmt.Sprintf("  %d. %s", i+1, err.Error())
	}
	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e), strings.Join(messages, "\n"))
}

// Unwrap exposes every collected error to errors.Is and errors.As
func (e SyntaxErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}
