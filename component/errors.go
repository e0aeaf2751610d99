// SPDX-License-Identifier: MIT

package component

import "errors"

var (
	// ErrUnknownKind is returned for a Kind outside the defined set.
	ErrUnknownKind = errors.New("component: unknown kind")

	// ErrNoWingSolver is returned by SolveWing without a solver.
	ErrNoWingSolver = errors.New("component: no wing solver")

	// ErrNotWing is returned when wing loads are requested for another kind.
	ErrNotWing = errors.New("component: not a wing")
)
