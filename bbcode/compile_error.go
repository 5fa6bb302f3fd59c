package bbcode

import (
	"fmt"
)

// CompileError describes an error which occurs while building the matcher table, like an improper Tag.
type CompileError struct {
	Issue Issue  // Issue is a kind of the problem.
	Tag   string // Tag is the offending identifier, empty if the problem is not tied to a Tag.
	Err   error  // Err contains the original error.
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func (e *CompileError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("%s: %v", e.Issue, e.Err)
	}
	return fmt.Sprintf("tag %q: %s: %v", e.Tag, e.Issue, e.Err)
}

// NewCompileError is a factory function for creating a *CompileError.
func NewCompileError(issue Issue, tag string, err error) *CompileError {
	return &CompileError{
		Issue: issue,
		Tag:   tag,
		Err:   err,
	}
}
