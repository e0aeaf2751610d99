// SPDX-License-Identifier: MIT

package acoustics

import "errors"

var (
	// ErrBadField is returned for a field without cells, blades, rotation
	// or a valid medium, or with supersonic inflow.
	ErrBadField = errors.New("acoustics: invalid field")

	// ErrBadCell is returned for a cell with non-positive speed, radius or chord.
	ErrBadCell = errors.New("acoustics: invalid cell")

	// ErrBadObserver is returned for a non-positive or non-finite distance.
	ErrBadObserver = errors.New("acoustics: invalid observer")
)
