// SPDX-License-Identifier: MIT

package optim

import "errors"

var (
	// ErrBadBounds is returned when bounds are missing, non-finite, of
	// mismatched length or not strictly ordered.
	ErrBadBounds = errors.New("optim: invalid bounds")

	// ErrDimension is returned when the start point does not match the bounds.
	ErrDimension = errors.New("optim: dimension mismatch")

	// ErrNilEval is returned when Problem.Eval is nil.
	ErrNilEval = errors.New("optim: nil objective")

	// ErrStartFailed is returned when the start point cannot be evaluated.
	ErrStartFailed = errors.New("optim: start point evaluation failed")

	// ErrMaxEval is returned when the evaluation budget is spent before the
	// constraint is met.
	ErrMaxEval = errors.New("optim: evaluation budget exhausted")
)
