// SPDX-License-Identifier: MIT

package propeller

import (
	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/optim"
)

const (
	// DefaultRootCut is the root cut-out as a fraction of the radius.
	DefaultRootCut = 0.1
	// DefaultMaxThrustCoefficient bounds the physically accepted Ct.
	DefaultMaxThrustCoefficient = 2.0
	// DefaultTipLossIterations bounds the Ct/tip-loss fixed point.
	DefaultTipLossIterations = 50
	// DefaultTipLossTol is the relative Ct change that ends the fixed point.
	DefaultTipLossTol = 1e-12
	// DefaultInflowIterations bounds the induced-velocity secant.
	DefaultInflowIterations = 100
	// DefaultInflowTol is the secant step that counts as converged (m/s).
	DefaultInflowTol = 1e-3
	// DefaultConstraintTol is the trim tolerance on |Ct_obtained - Ct_required|.
	DefaultConstraintTol = optim.DefaultConstraintTol
	// DefaultXTolRel is the trim relative step tolerance.
	DefaultXTolRel = optim.DefaultXTolRel
	// DefaultMaxEval is the trim evaluation budget.
	DefaultMaxEval = optim.DefaultMaxEval
)

const (
	panicRootCutInvalid = "propeller: WithRootCut: need 0 <= rc < 1"
	panicTolInvalid     = "propeller: WithTrimTolerance: tolerances must be > 0"
	panicMaxEvalInvalid = "propeller: WithMaxEval: budget must be >= 1"
)

// Option configures a Propeller.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	logger  l.Wrapper
	metrics *metrics.Collectors
	sink    *DetailedSink
	rootCut float64
	ctol    float64
	xtol    float64
	maxEval int
}

// WithLogger sets the structured logger.
func WithLogger(logger l.Wrapper) Option {
	return func(o *Options) { o.logger = logger }
}

// WithMetrics records convergence failures and solve outcomes.
func WithMetrics(m *metrics.Collectors) Option {
	return func(o *Options) { o.metrics = m }
}

// WithSink attaches a detailed-output sink filled on every trim and
// acoustic solve.
func WithSink(s *DetailedSink) Option {
	return func(o *Options) { o.sink = s }
}

// WithRootCut sets the root cut-out used by the trim.
func WithRootCut(rc float64) Option {
	if rc < 0 || rc >= 1 {
		panic(panicRootCutInvalid)
	}

	return func(o *Options) { o.rootCut = rc }
}

// WithTrimTolerance sets the constraint and relative step tolerances.
func WithTrimTolerance(ctol, xtol float64) Option {
	if !(ctol > 0) || !(xtol > 0) {
		panic(panicTolInvalid)
	}

	return func(o *Options) { o.ctol, o.xtol = ctol, xtol }
}

// WithMaxEval sets the trim evaluation budget.
func WithMaxEval(n int) Option {
	if n < 1 {
		panic(panicMaxEvalInvalid)
	}

	return func(o *Options) { o.maxEval = n }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		rootCut: DefaultRootCut,
		ctol:    DefaultConstraintTol,
		xtol:    DefaultXTolRel,
		maxEval: DefaultMaxEval,
	}
	for _, set := range user {
		set(&o)
	}
	if o.logger == nil {
		o.logger = l.NewNopLoggerWrapper()
	}

	return o
}
