package stats

import (
	"errors"
	"fmt"
)

// EmptyTrimResultError means the sample was too small for the trimming policy
// to leave anything to estimate from.
type EmptyTrimResultError struct {
	SampleSize int
}

func NewEmptyTrimResultError(sampleSize int) *EmptyTrimResultError {
	return &EmptyTrimResultError{SampleSize: sampleSize}
}

func (e EmptyTrimResultError) Error() string {
	return fmt.Sprintf("trimming outliers from a sample of %d values left no values", e.SampleSize)
}

func (e EmptyTrimResultError) Is(target error) bool {
	var t *EmptyTrimResultError
	ok := errors.As(target, &t)
	return ok
}
