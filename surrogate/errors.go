// SPDX-License-Identifier: MIT
// Package surrogate: sentinel error set.
// Every message is prefixed with "surrogate: ..." and is matched by callers
// via errors.Is. Context is added with fmt.Errorf("ctx: %w", ErrX).

package surrogate

import "errors"

var (
	// ErrBadDimension is returned when the input dimensionality is < 1.
	ErrBadDimension = errors.New("surrogate: dimension must be > 0")

	// ErrBadCapacity is returned when the row capacity is < 1.
	ErrBadCapacity = errors.New("surrogate: capacity must be > 0")

	// ErrCapacityExceeded signals that appending rows would overflow the
	// fixed capacity. Nothing is appended when this is returned.
	ErrCapacityExceeded = errors.New("surrogate: training capacity exceeded")

	// ErrDimensionMismatch signals ragged input rows, a query of the wrong
	// length, a scaling vector of the wrong length, or inputs/outputs of
	// different lengths.
	ErrDimensionMismatch = errors.New("surrogate: dimension mismatch")

	// ErrEmpty is returned when evaluating an interpolator with no rows.
	ErrEmpty = errors.New("surrogate: no training data")

	// ErrSharedInputs is returned when appending through an interpolator
	// whose Inputs are borrowed from another one.
	ErrSharedInputs = errors.New("surrogate: inputs are shared and read-only")

	// ErrForeignNeighbors is returned when Neighbors computed over one
	// Inputs matrix are applied to an interpolator over another.
	ErrForeignNeighbors = errors.New("surrogate: neighbours belong to different inputs")

	// ErrNaNInf signals a NaN or ±Inf value in training data or a query.
	ErrNaNInf = errors.New("surrogate: NaN or Inf encountered")

	// ErrOutOfRange indicates a row or column index outside Inputs bounds.
	ErrOutOfRange = errors.New("surrogate: index out of range")
)
