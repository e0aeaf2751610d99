// SPDX-License-Identifier: MIT

package propeller

import "errors"

var (
	// ErrConfiguration is returned when the blade, controller or
	// atmosphere is missing, or the atmosphere has been released.
	ErrConfiguration = errors.New("propeller: not configured")

	// ErrThrustCoefficient is returned when the tip-loss factor, the
	// effective area or the thrust coefficient leaves its physical range.
	ErrThrustCoefficient = errors.New("propeller: thrust coefficient out of physical range")

	// ErrConvergenceFailure is returned when an iteration budget (tip loss,
	// induced velocity or trim) is exhausted.
	ErrConvergenceFailure = errors.New("propeller: convergence failure")

	// ErrNumericInvalid is returned when thrust coefficient or power is NaN.
	ErrNumericInvalid = errors.New("propeller: numeric result is NaN")

	// ErrNotTrimmed is returned by post-processing before a successful trim.
	ErrNotTrimmed = errors.New("propeller: not trimmed")

	// ErrBadController is returned for an unknown mode or inverted bounds.
	ErrBadController = errors.New("propeller: invalid controller")

	// ErrBadState is returned when decoding an unknown state name.
	ErrBadState = errors.New("propeller: unknown state")
)
