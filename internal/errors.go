package internal

import (
	"errors"
	"fmt"
)

// SourceParseError is a raw listing field that could not be converted.
type SourceParseError struct {
	PostId string
	Field  string
	Value  string
	Err    error
}

func NewSourceParseError(postId, field, value string, err error) *SourceParseError {
	return &SourceParseError{PostId: postId, Field: field, Value: value, Err: err}
}

func (e SourceParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("listing %q: failed to parse %s from %q: %v", e.PostId, e.Field, e.Value, e.Err)
	}

	return fmt.Sprintf("listing %q: failed to parse %s from %q", e.PostId, e.Field, e.Value)
}

func (e SourceParseError) Unwrap() error {
	return e.Err
}

func (e SourceParseError) Is(target error) bool {
	var t *SourceParseError
	ok := errors.As(target, &t)
	return ok
}

// InsufficientSampleError marks a neighborhood with too few listings in the window.
type InsufficientSampleError struct {
	Neighborhood string
	Count        int
	Threshold    int
}

func NewInsufficientSampleError(neighborhood string, count, threshold int) *InsufficientSampleError {
	return &InsufficientSampleError{Neighborhood: neighborhood, Count: count, Threshold: threshold}
}

func (e InsufficientSampleError) Error() string {
	return fmt.Sprintf("neighborhood %q has %d listings, at least %d needed", e.Neighborhood, e.Count, e.Threshold)
}

func (e InsufficientSampleError) Is(target error) bool {
	var t *InsufficientSampleError
	ok := errors.As(target, &t)
	return ok
}
