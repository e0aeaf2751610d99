// SPDX-License-Identifier: MIT

// Package surrogate - Inputs storage (column-major) & safe accessors.
//
// Purpose:
//   - Hold training inputs column by column so a distance pass reads each
//     dimension as one contiguous slice.
//   - Grow on demand but never past the fixed capacity.
//   - Guarantee safety at the public surface: At returns errors instead of panicking.
//
// Complexity quicksheet:
//   - NewInputs: O(d); Append: O(rows·d) amortised; At: O(1).

package surrogate

import (
	"fmt"
	"math"
	"strings"
)

const (
	ctxAt     = "At"
	ctxAppend = "Append"
)

// inputsErrorf wraps an error with Inputs method context and coordinates.
func inputsErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Inputs.%s(%d,%d): %w", method, row, col, err)
}

// Inputs is a column-major matrix of training inputs.
//   - dim is the number of columns (input dimensionality).
//   - capacity bounds the number of rows; appends past it fail atomically.
//   - cols[j] holds column j; every column has the same length.
type Inputs struct {
	dim      int
	capacity int
	cols     [][]float64
}

// NewInputs creates an empty dim-column matrix that accepts up to capacity rows.
func NewInputs(dim, capacity int) (*Inputs, error) {
	if dim < 1 {
		return nil, ErrBadDimension
	}
	if capacity < 1 {
		return nil, ErrBadCapacity
	}

	return &Inputs{dim: dim, capacity: capacity, cols: make([][]float64, dim)}, nil
}

// Dim returns the number of columns.
func (m *Inputs) Dim() int { return m.dim }

// Capacity returns the maximum number of rows.
func (m *Inputs) Capacity() int { return m.capacity }

// Len returns the number of stored rows.
func (m *Inputs) Len() int { return len(m.cols[0]) }

// Column returns column j without copying. Callers must not modify it.
func (m *Inputs) Column(j int) ([]float64, error) {
	if j < 0 || j >= m.dim {
		return nil, inputsErrorf(ctxAt, 0, j, ErrOutOfRange)
	}

	return m.cols[j], nil
}

// At returns the value at (row, col).
func (m *Inputs) At(row, col int) (float64, error) {
	if row < 0 || row >= m.Len() || col < 0 || col >= m.dim {
		return 0, inputsErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return m.cols[col][row], nil
}

// Append adds rows to the matrix.
// Stage 1: validate every row (length, finiteness) and the capacity.
// Stage 2: append column by column.
// On any error nothing is appended.
func (m *Inputs) Append(rows [][]float64) error {
	n := m.Len()
	if n+len(rows) > m.capacity {
		return fmt.Errorf("Inputs.%s: %d + %d rows > capacity %d: %w",
			ctxAppend, n, len(rows), m.capacity, ErrCapacityExceeded)
	}
	for i, row := range rows {
		if len(row) != m.dim {
			return inputsErrorf(ctxAppend, n+i, len(row), ErrDimensionMismatch)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return inputsErrorf(ctxAppend, n+i, j, ErrNaNInf)
			}
		}
	}
	for j := 0; j < m.dim; j++ {
		col := m.cols[j]
		if cap(col) < n+len(rows) {
			grown := make([]float64, n, growCap(cap(col), n+len(rows), m.capacity))
			copy(grown, col)
			col = grown
		}
		for _, row := range rows {
			col = append(col, row[j])
		}
		m.cols[j] = col
	}

	return nil
}

// growCap doubles the current capacity until need fits, capped at limit.
func growCap(have, need, limit int) int {
	c := have
	if c < 16 {
		c = 16
	}
	for c < need {
		c *= 2
	}
	if c > limit {
		c = limit
	}

	return c
}

// String implements fmt.Stringer; rows are printed one per line.
func (m *Inputs) String() string {
	var sb strings.Builder
	for i := 0; i < m.Len(); i++ {
		sb.WriteString("[")
		for j := 0; j < m.dim; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.cols[j][i])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
