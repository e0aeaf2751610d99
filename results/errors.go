// SPDX-License-Identifier: MIT

package results

import "errors"

var (
	// ErrDriver is returned by Open for a driver other than sqlite or pgx.
	ErrDriver = errors.New("results: unsupported driver")

	// ErrRunNotFound is returned when a run id is unknown.
	ErrRunNotFound = errors.New("results: run not found")
)
