// SPDX-License-Identifier: MIT

package surrogate

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMeanSize is the number of nearest rows averaged per query.
	// It is clamped to the number of stored rows at query time.
	DefaultMeanSize = 5

	// DefaultZeroNudge replaces a zero query component in the denominator of
	// the relative distance (x-p)/(p·s) so it stays finite.
	DefaultZeroNudge = 1e-4
)

const (
	panicMeanSizeInvalid  = "surrogate: WithMeanSize: k must be >= 1"
	panicScalingInvalid   = "surrogate: WithScaling: factors must be finite and > 0"
	panicZeroNudgeInvalid = "surrogate: WithZeroNudge: nudge must be finite and != 0"
)

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options is the resolved interpolator configuration.
type Options struct {
	meanSize  int       // DefaultMeanSize
	scaling   []float64 // nil means all ones (length fixed by dimension)
	zeroNudge float64   // DefaultZeroNudge
}

// WithMeanSize sets k, the number of neighbours per query.
func WithMeanSize(k int) Option {
	if k < 1 {
		panic(panicMeanSizeInvalid)
	}

	return func(o *Options) { o.meanSize = k }
}

// WithScaling sets the per-dimension scaling factors. The length is checked
// against the dimensionality by New/NewShared, not here.
func WithScaling(factors ...float64) Option {
	for _, f := range factors {
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			panic(panicScalingInvalid)
		}
	}
	s := append([]float64(nil), factors...)

	return func(o *Options) { o.scaling = s }
}

// WithZeroNudge overrides the denominator used for zero query components.
func WithZeroNudge(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps == 0 {
		panic(panicZeroNudgeInvalid)
	}

	return func(o *Options) { o.zeroNudge = eps }
}

// gatherOptions applies user options over defaults; last writer wins.
func gatherOptions(user ...Option) Options {
	o := Options{
		meanSize:  DefaultMeanSize,
		zeroNudge: DefaultZeroNudge,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
