// SPDX-License-Identifier: MIT

package export

import "errors"

// ErrNilWriter is returned when no destination is given.
var ErrNilWriter = errors.New("export: nil writer")
