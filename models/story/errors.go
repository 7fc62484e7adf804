package story

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStoryNotFound is returned by lookups that require the row to exist.
	ErrStoryNotFound = errors.New("story not found")

	// ErrMalformedContent is returned when a story document has no blocks,
	// so no title can be derived.
	ErrMalformedContent = errors.New("story content has no blocks")

	// ErrNotAllowed is returned when a user attempts a mutation their
	// permissions do not cover.
	ErrNotAllowed = errors.New("user is not allowed to perform this action")
)

// FieldError reports a single changeset violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Message
}

// ValidationErrors collects every field violation found in one changeset pass.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ConstraintError is a storage uniqueness conflict translated to the
// offending field.
type ConstraintError struct {
	Field string
}

func (e *ConstraintError) Error() string {
	return e.Field + " has already been taken"
}

// TransactionError reports which step of a multi-step operation failed and
// why. The wrapped cause stays reachable through errors.Is / errors.As.
type TransactionError struct {
	Step string
	Err  error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction aborted at step %q: %v", e.Step, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
