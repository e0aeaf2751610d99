// SPDX-License-Identifier: MIT

package polar

import (
	"fmt"
	"sort"
)

// deriveLayout counts unique alpha, Re and (when useMach) mach values and
// checks that the arrays are long enough to cover the sweep.
func deriveLayout(td TrainingData, useMach bool) (Layout, error) {
	n := len(td.CL)
	for _, col := range [][]float64{td.CD, td.Re, td.Alpha, td.Mach} {
		if len(col) != n {
			return Layout{}, fmt.Errorf("columns differ in length: %w", ErrDataFormat)
		}
	}
	lay := Layout{NAlpha: countUnique(td.Alpha), NRe: countUnique(td.Re), NMach: 1}
	if useMach {
		lay.NMach = countUnique(td.Mach)
	}
	if lay.NAlpha < 3 || lay.NRe < 1 {
		return Layout{}, fmt.Errorf("need >= 3 alpha values and >= 1 Re value, got %d×%d: %w",
			lay.NAlpha, lay.NRe, ErrDataFormat)
	}
	if lay.Rows() > n {
		return Layout{}, fmt.Errorf("%d rows cannot hold a %d×%d×%d sweep: %w",
			n, lay.NAlpha, lay.NRe, lay.NMach, ErrDataFormat)
	}

	return lay, nil
}

func countUnique(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}

	return len(seen)
}

// reversal scans ys from mid in direction step (+1 or -1) up to and
// including stop, and returns the first index where the curve stops
// growing in that direction. found is false when stop is reached first, in
// which case stop itself is returned.
func reversal(ys []float64, mid, stop, step int) (idx int, found bool) {
	prev := mid
	for cur := mid + step; step > 0 && cur <= stop || step < 0 && cur >= stop; cur += step {
		if (ys[cur]-ys[prev])*float64(step) < 0 {
			return cur, true
		}
		prev = cur
	}

	return stop, false
}

// blockTables is the per-(mach, Re) output of the stall / max-L/D search.
type blockTables struct {
	posStall, negStall, maxLD []float64
	re, mach                  []float64 // key per block (mach repeated per Re block)
	uniqueMach                []float64
	fallbacks                 [3]int // positive, negative, max-L/D
}

// stallTables scans every (mach, Re) block outward from its mid-alpha row.
func stallTables(td TrainingData, lay Layout) blockTables {
	var bt blockTables
	ratio := make([]float64, lay.Rows())
	for i := range ratio {
		ratio[i] = td.CL[i] / td.CD[i]
	}
	for m := 0; m < lay.NMach; m++ {
		bt.uniqueMach = append(bt.uniqueMach, td.Mach[m*lay.NAlpha*lay.NRe])
		for j := 0; j < lay.NRe; j++ {
			first := (m*lay.NRe + j) * lay.NAlpha
			last := first + lay.NAlpha - 1
			mid := first + lay.NAlpha/2

			bt.re = append(bt.re, td.Re[mid])
			bt.mach = append(bt.mach, td.Mach[mid])

			i, ok := reversal(td.CL, mid, last, +1)
			bt.posStall = append(bt.posStall, td.Alpha[i])
			if !ok {
				bt.fallbacks[0]++
			}
			i, ok = reversal(td.CL, mid, first, -1)
			bt.negStall = append(bt.negStall, td.Alpha[i])
			if !ok {
				bt.fallbacks[1]++
			}
			i, ok = reversal(ratio, mid, last, +1)
			bt.maxLD = append(bt.maxLD, td.Alpha[i])
			if !ok {
				bt.fallbacks[2]++
			}
		}
	}

	return bt
}

// uniqueSorted returns the distinct values of xs in ascending order.
func uniqueSorted(xs []float64) []float64 {
	seen := make(map[float64]struct{}, len(xs))
	var out []float64
	for _, x := range xs {
		if _, ok := seen[x]; !ok {
			seen[x] = struct{}{}
			out = append(out, x)
		}
	}
	sort.Float64s(out)

	return out
}

func minMax(xs []float64) (lo, hi float64) {
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}

	return lo, hi
}
