// SPDX-License-Identifier: MIT

package httpapi

import "errors"

var (
	// ErrNoArchive is reported when a run route is hit without a results store.
	ErrNoArchive = errors.New("httpapi: results store not configured")

	// ErrNoPoints is reported when neither the request nor the run file
	// names an operating point.
	ErrNoPoints = errors.New("httpapi: no operating points")
)
