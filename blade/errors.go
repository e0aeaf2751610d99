// SPDX-License-Identifier: MIT

package blade

import "errors"

var (
	// ErrNoSections is returned when a blade is built from an empty list.
	ErrNoSections = errors.New("blade: at least one section required")

	// ErrUnsortedSections is returned when locations are not strictly increasing.
	ErrUnsortedSections = errors.New("blade: section locations must be strictly increasing")

	// ErrLocationRange is returned for a location outside [0, 1].
	ErrLocationRange = errors.New("blade: section location outside [0, 1]")

	// ErrBadSection is returned for a non-positive chord, a non-finite value
	// or a missing airfoil name.
	ErrBadSection = errors.New("blade: invalid section")

	// ErrBadRadius is returned for a non-positive or non-finite radius.
	ErrBadRadius = errors.New("blade: radius must be finite and > 0")

	// ErrNoPolars is returned by lookups that need a polar store when none
	// was attached.
	ErrNoPolars = errors.New("blade: no polar store attached")
)
