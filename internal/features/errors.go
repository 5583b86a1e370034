package features

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaMismatch means the classifier's declared columns and the
	// assembled row disagree.
	ErrSchemaMismatch = errors.New("schema mismatch")

	ErrInvalidInput = errors.New("invalid input")
)

// SchemaMismatchError lists the offending columns. It matches ErrSchemaMismatch
// under errors.Is.
type SchemaMismatchError struct {
	Missing   []string
	Duplicate []string
	Expected  int
	Got       int
}

func (e *SchemaMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing columns: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Duplicate) > 0 {
		parts = append(parts, "duplicate columns: "+strings.Join(e.Duplicate, ", "))
	}
	if e.Expected != e.Got {
		parts = append(parts, fmt.Sprintf("expected %d columns, got %d", e.Expected, e.Got))
	}
	if len(parts) == 0 {
		return ErrSchemaMismatch.Error()
	}
	return ErrSchemaMismatch.Error() + ": " + strings.Join(parts, "; ")
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }
