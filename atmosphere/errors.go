// SPDX-License-Identifier: MIT

package atmosphere

import "errors"

var (
	// ErrAltitudeRange is returned outside the troposphere model's domain.
	ErrAltitudeRange = errors.New("atmosphere: altitude outside model range")

	// ErrBadConditions is returned for non-finite inputs, a negative speed
	// or a non-positive resulting temperature.
	ErrBadConditions = errors.New("atmosphere: invalid operating conditions")
)
