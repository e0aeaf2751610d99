// Package metrics exposes Prometheus collectors for the solver pipeline.
//
// All Collectors methods are safe on a nil receiver, so components accept an
// optional *Collectors and record nothing when it is absent.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Stall-search tables.
const (
	TablePositiveStall = "positive_stall"
	TableNegativeStall = "negative_stall"
	TableMaxLD         = "max_ld"
)

// Convergence stages.
const (
	StageThrust = "thrust"
	StageInflow = "inflow"
	StageTrim   = "trim"
)

// Solve outcomes.
const (
	OutcomeTrimmed  = "trimmed"
	OutcomeUnsolved = "unsolved"
	OutcomeFailed   = "failed"
)

// Collectors groups the counters recorded by polar, propeller and propulsion.
type Collectors struct {
	StallFallbacks      *prometheus.CounterVec
	ConvergenceFailures *prometheus.CounterVec
	Solves              *prometheus.CounterVec
	OutOfRange          prometheus.Counter
}

// New creates the collectors and registers them on reg when reg is non-nil.
func New(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		StallFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "propel",
			Name:      "stall_search_fallbacks_total",
			Help:      "Stall or max-L/D searches that hit the table boundary without a trend reversal.",
		}, []string{"table"}),
		ConvergenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "propel",
			Name:      "convergence_failures_total",
			Help:      "Operating points abandoned because an iteration budget was exhausted.",
		}, []string{"stage"}),
		Solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "propel",
			Name:      "solves_total",
			Help:      "Thrust solves by outcome.",
		}, []string{"outcome"}),
		OutOfRange: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "propel",
			Name:      "out_of_range_total",
			Help:      "Sectional lookups outside the trained alpha/Reynolds envelope.",
		}),
	}
	if reg != nil {
		for _, col := range []prometheus.Collector{c.StallFallbacks, c.ConvergenceFailures, c.Solves, c.OutOfRange} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// StallFallback counts one boundary fallback for table.
func (c *Collectors) StallFallback(table string) {
	if c == nil {
		return
	}
	c.StallFallbacks.WithLabelValues(table).Inc()
}

// ConvergenceFailure counts one exhausted budget at stage.
func (c *Collectors) ConvergenceFailure(stage string) {
	if c == nil {
		return
	}
	c.ConvergenceFailures.WithLabelValues(stage).Inc()
}

// Solve counts one solve with the given outcome.
func (c *Collectors) Solve(outcome string) {
	if c == nil {
		return
	}
	c.Solves.WithLabelValues(outcome).Inc()
}

// OutOfRangeLookup counts one out-of-envelope lookup.
func (c *Collectors) OutOfRangeLookup() {
	if c == nil {
		return
	}
	c.OutOfRange.Inc()
}
