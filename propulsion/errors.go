// SPDX-License-Identifier: MIT

package propulsion

import "errors"

var (
	// ErrNoPropellers is returned when solving an empty system.
	ErrNoPropellers = errors.New("propulsion: no propellers")

	// ErrDuplicateName is returned when two propellers share a name.
	ErrDuplicateName = errors.New("propulsion: duplicate propeller name")

	// ErrUnsolved marks a sweep point that never reached the solver.
	ErrUnsolved = errors.New("propulsion: point not solved")
)
