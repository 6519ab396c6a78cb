package domain

import (
	"errors"
	"fmt"
)

// ErrImageNotFound a scene image path doesn't exist. Fatal to the whole comparison.
var ErrImageNotFound = errors.New("image not found")

// ErrNoComparison a follow-up question was posed before any comparison has been run.
var ErrNoComparison = errors.New("no comparison has been run yet")

// TransportError the question-generation API returned a non-success status. The status
// code and the response body are preserved for diagnostics.
type TransportError struct {
	StatusCode int
	Body       string
}

func (t *TransportError) Error() string {
	return fmt.Sprintf("vision API error: %d - %s", t.StatusCode, t.Body)
}
