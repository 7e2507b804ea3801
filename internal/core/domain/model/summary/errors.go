package summary

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAggregationPartialFailure is the sentinel behind PartialFailureError.
var ErrAggregationPartialFailure = errors.New("aggregation partially failed")

// KeyFailure records why one key could not be aggregated. A zero DepartmentID
// means the whole day failed (its orders could not be loaded).
type KeyFailure struct {
	Key Key
	Err error
}

// PartialFailureError is returned after all keys were attempted and at least one failed.
type PartialFailureError struct {
	Failures []KeyFailure
}

func (e *PartialFailureError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Key, f.Err))
	}
	return fmt.Sprintf("%s: %d key(s) failed: %s", ErrAggregationPartialFailure, len(e.Failures), strings.Join(parts, "; "))
}

func (e *PartialFailureError) Unwrap() error {
	return ErrAggregationPartialFailure
}
