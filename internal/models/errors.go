package models

import (
	"errors"
	"fmt"
)

// InputError marks malformed caller input (coordinate out of range, wrong
// feature dimensionality, non-finite value). Never retried.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// ResolutionError marks a classification stage failure for a specific
// coordinate. Surfaced per request or per batch item, never retried.
type ResolutionError struct {
	Coordinate Coordinate
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("recommendation failed for (%.4f, %.4f): %v",
		e.Coordinate.Latitude, e.Coordinate.Longitude, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ErrBatchSizeExceeded rejects an oversized batch before any item is
// dispatched.
var ErrBatchSizeExceeded = errors.New("batch size limited to 100 locations")

// ErrItemTimeout marks a batch item whose wait exceeded the per-item
// timeout. The underlying computation is left running so it can still warm
// the cache.
var ErrItemTimeout = errors.New("item timed out")
