// SPDX-License-Identifier: MIT

package optim

import (
	"fmt"
	"math"
)

// Func evaluates the objective f and the equality constraint c at x. A
// non-nil error or a NaN rejects the point.
type Func func(x []float64) (f, c float64, err error)

// Problem is min f(x) s.t. c(x) = 0, Lower <= x <= Upper.
type Problem struct {
	Eval  Func
	Lower []float64
	Upper []float64
}

// Result is the best point found.
type Result struct {
	X           []float64
	F           float64
	C           float64
	Evaluations int
	Feasible    bool
}

func (p Problem) validate(x0 []float64) error {
	if p.Eval == nil {
		return ErrNilEval
	}
	n := len(p.Lower)
	if n == 0 || len(p.Upper) != n {
		return fmt.Errorf("%d lower, %d upper: %w", len(p.Lower), len(p.Upper), ErrBadBounds)
	}
	for i := 0; i < n; i++ {
		lo, hi := p.Lower[i], p.Upper[i]
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(lo < hi) {
			return fmt.Errorf("coordinate %d [%g, %g]: %w", i, lo, hi, ErrBadBounds)
		}
	}
	if len(x0) != n {
		return fmt.Errorf("start has %d coordinates, bounds %d: %w", len(x0), n, ErrDimension)
	}
	for i, v := range x0 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("start coordinate %d is %g: %w", i, v, ErrDimension)
		}
	}

	return nil
}
