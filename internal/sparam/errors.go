package sparam

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when driver and receiver lists that must be
// paired by position have different lengths.
var ErrLengthMismatch = errors.New("driver and receiver lists must have the same length")

// LengthMismatchError carries the list sizes that could not be paired.
type LengthMismatchError struct {
	Drivers   int
	Receivers int
}

// Error implements the error interface.
func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%v (tx=%d, rx=%d)", ErrLengthMismatch, e.Drivers, e.Receivers)
}

// Is reports whether target is ErrLengthMismatch.
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// IsLengthMismatch returns true if err is a length mismatch error.
// Uses errors.Is to handle wrapped errors.
func IsLengthMismatch(err error) bool {
	return errors.Is(err, ErrLengthMismatch)
}
