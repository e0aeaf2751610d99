// SPDX-License-Identifier: MIT

package optim

const (
	// DefaultConstraintTol is the absolute tolerance on |c(x)|.
	DefaultConstraintTol = 1e-8
	// DefaultXTolRel is the relative step tolerance on x.
	DefaultXTolRel = 1e-5
	// DefaultMaxEval is the evaluation budget.
	DefaultMaxEval = 100
	// DefaultRhoBegin is the initial trust radius as a fraction of each box side.
	DefaultRhoBegin = 0.1
)

const (
	panicTolInvalid     = "optim: tolerance must be > 0"
	panicMaxEvalInvalid = "optim: WithMaxEval: budget must be >= 1"
	panicRhoInvalid     = "optim: WithRhoBegin: need 0 < rho <= 0.5"
)

// Option configures Minimize.
type Option func(*Options)

// Options is the resolved solver configuration.
type Options struct {
	ctol     float64
	xtol     float64
	maxEval  int
	rhoBegin float64
}

// WithConstraintTol sets the feasibility tolerance on |c|.
func WithConstraintTol(tol float64) Option {
	if !(tol > 0) {
		panic(panicTolInvalid)
	}

	return func(o *Options) { o.ctol = tol }
}

// WithXTolRel sets the relative step tolerance that ends trust-radius
// reduction.
func WithXTolRel(tol float64) Option {
	if !(tol > 0) {
		panic(panicTolInvalid)
	}

	return func(o *Options) { o.xtol = tol }
}

// WithMaxEval caps the number of objective evaluations.
func WithMaxEval(n int) Option {
	if n < 1 {
		panic(panicMaxEvalInvalid)
	}

	return func(o *Options) { o.maxEval = n }
}

// WithRhoBegin sets the initial trust radius in normalised units.
func WithRhoBegin(rho float64) Option {
	if !(rho > 0) || rho > 0.5 {
		panic(panicRhoInvalid)
	}

	return func(o *Options) { o.rhoBegin = rho }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		ctol:     DefaultConstraintTol,
		xtol:     DefaultXTolRel,
		maxEval:  DefaultMaxEval,
		rhoBegin: DefaultRhoBegin,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
