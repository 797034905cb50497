package models

import (
	"errors"
	"fmt"
)

var (
	// ErrCacheMiss indicates that the key is absent or its entry has expired
	ErrCacheMiss = errors.New("cache miss")

	// ErrNilComputeFunc indicates that get-or-compute was called without a compute function
	ErrNilComputeFunc = errors.New("compute function is nil")
)

// TypeMismatchError reports a cached value whose type differs from the one the caller reads it as
type TypeMismatchError struct {
	Key  string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cache key %s: expected value of type %s, found %s", e.Key, e.Want, e.Got)
}

// NewTypeMismatchError creates a new type mismatch error for the given key
func NewTypeMismatchError(key, want, got string) *TypeMismatchError {
	return &TypeMismatchError{
		Key:  key,
		Want: want,
		Got:  got,
	}
}
