// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrInvalid is returned by Validate; the wrapped message names the field.
	ErrInvalid = errors.New("config: invalid")

	// ErrNoAirfoils is returned when no propeller section names an airfoil.
	ErrNoAirfoils = errors.New("config: no airfoils to load")
)
