// Package validate implements the structural and hook validators that run
// at world load and behavior-registry finalisation (§4.3). All failures
// accumulate into a single Errors value rather than aborting on the first
// offence, mirroring the source's ValidationError(errors: list[str]).
package validate

import (
	"strconv"
	"strings"
)

// Errors aggregates every validation offence found in one pass. A nil
// *Errors (or one with no Items) means validation passed.
type Errors struct {
	Items []string
}

func (e *Errors) Error() string {
	if e == nil || len(e.Items) == 0 {
		return "validation failed"
	}
	if len(e.Items) == 1 {
		return e.Items[0]
	}
	var b strings.Builder
	b.WriteString("validation failed with ")
	b.WriteString(strconv.Itoa(len(e.Items)))
	b.WriteString(" errors:\n")
	for _, item := range e.Items {
		b.WriteString("  - ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

// Add appends a formatted offence.
func (e *Errors) Add(msg string) {
	e.Items = append(e.Items, msg)
}

// Merge appends another batch of offences in place.
func (e *Errors) Merge(other []string) {
	e.Items = append(e.Items, other...)
}

// AsError returns e as an error if it holds any offence, else nil. Callers
// build an *Errors via zero value, populate it, then return AsError() so a
// clean pass yields a true nil error (not a non-nil interface wrapping a
// nil-but-empty *Errors).
func (e *Errors) AsError() error {
	if e == nil || len(e.Items) == 0 {
		return nil
	}
	return e
}
