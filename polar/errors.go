// SPDX-License-Identifier: MIT
// Package polar: sentinel error set. All messages carry the "polar: " prefix.

package polar

import "errors"

var (
	// ErrDataFormat is returned for malformed training or coordinate JSON:
	// a missing key, a non-array value, a non-numeric element, or arrays
	// too short for the alpha × Re (× mach) sweep they describe.
	ErrDataFormat = errors.New("polar: malformed data")

	// ErrUnknownAirfoil is returned for a name that was never registered or built.
	ErrUnknownAirfoil = errors.New("polar: unknown airfoil")

	// ErrNotBuilt is returned when querying an airfoil whose surrogate build
	// has not succeeded.
	ErrNotBuilt = errors.New("polar: surrogate not built")

	// ErrDataOutOfRange is returned when a query lies outside the trained
	// alpha/Reynolds envelope and the range policy is Abort.
	ErrDataOutOfRange = errors.New("polar: query outside trained envelope")

	// ErrFrozen is returned when mutating a store after Freeze.
	ErrFrozen = errors.New("polar: store is frozen")

	// ErrNoCoordinates is returned when geometry is requested for an airfoil
	// without coordinate data (or with a zero maximum thickness).
	ErrNoCoordinates = errors.New("polar: no coordinate data")
)
