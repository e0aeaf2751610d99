// SPDX-License-Identifier: MIT

package polar

import (
	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/surrogate"
)

// RangePolicy decides what AeroValues does with an out-of-envelope query.
type RangePolicy int

const (
	// Clamp moves alpha and Re onto the nearest envelope edge and counts the event.
	Clamp RangePolicy = iota
	// Abort returns ErrDataOutOfRange.
	Abort
)

const (
	// DefaultCapacity2D bounds CL/CD rows for (alpha, Re) tables.
	DefaultCapacity2D = 50000
	// DefaultCapacity3D bounds CL/CD rows for (alpha, mach, Re) tables.
	DefaultCapacity3D = 500000
	// DefaultTableCapacity1D bounds stall/max-L/D rows keyed by Re.
	DefaultTableCapacity1D = 500
	// DefaultTableCapacity2D bounds stall/max-L/D rows keyed by (mach, Re).
	DefaultTableCapacity2D = 5000

	// DefaultRangePolicy is Clamp.
	DefaultRangePolicy = Clamp
)

// Scaling factors per input dimension; Reynolds numbers are damped so that
// angle differences dominate the neighbour search.
var (
	scalingPolar2D = []float64{1.0, 0.01}
	scalingPolar3D = []float64{1.0, 0.1, 0.01}
	scalingTable1D = []float64{0.1}
	scalingTable2D = []float64{0.1, 1.0}
)

const panicRangePolicyInvalid = "polar: WithRangePolicy: unknown policy"

// Option configures a Store.
type Option func(*Options)

// Options is the resolved Store configuration.
type Options struct {
	logger      l.Wrapper
	metrics     *metrics.Collectors
	policy      RangePolicy
	useMach     bool
	capacity    int // CL/CD rows; 0 selects the 2-D/3-D default
	tableCap    int // stall rows; 0 selects the 1-D/2-D default
	surrogateKV []surrogate.Option
}

// WithLogger sets the structured logger.
func WithLogger(logger l.Wrapper) Option {
	return func(o *Options) { o.logger = logger }
}

// WithMetrics records stall fallbacks and out-of-range lookups.
func WithMetrics(m *metrics.Collectors) Option {
	return func(o *Options) { o.metrics = m }
}

// WithRangePolicy selects Clamp or Abort for out-of-envelope queries.
func WithRangePolicy(p RangePolicy) Option {
	if p != Clamp && p != Abort {
		panic(panicRangePolicyInvalid)
	}

	return func(o *Options) { o.policy = p }
}

// WithMach builds 3-D (alpha, mach, Re) surrogates instead of (alpha, Re).
func WithMach(on bool) Option {
	return func(o *Options) { o.useMach = on }
}

// WithMeanSize sets k for every interpolator of the store.
func WithMeanSize(k int) Option {
	kv := surrogate.WithMeanSize(k)

	return func(o *Options) { o.surrogateKV = append(o.surrogateKV, kv) }
}

// WithCapacity overrides the CL/CD and stall-table row capacities.
func WithCapacity(polarRows, tableRows int) Option {
	if polarRows < 1 || tableRows < 1 {
		panic("polar: WithCapacity: capacities must be >= 1")
	}

	return func(o *Options) { o.capacity, o.tableCap = polarRows, tableRows }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		policy: DefaultRangePolicy,
	}
	for _, set := range user {
		set(&o)
	}
	if o.logger == nil {
		o.logger = l.NewNopLoggerWrapper()
	}
	if o.capacity == 0 {
		o.capacity = DefaultCapacity2D
		if o.useMach {
			o.capacity = DefaultCapacity3D
		}
	}
	if o.tableCap == 0 {
		o.tableCap = DefaultTableCapacity1D
		if o.useMach {
			o.tableCap = DefaultTableCapacity2D
		}
	}

	return o
}
