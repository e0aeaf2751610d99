// SPDX-License-Identifier: MIT

package propulsion

import (
	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/propeller"
)

const panicRootCutInvalid = "propulsion: WithAcousticRootCut: need 0 <= rc < 1"

// Option configures a System.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	logger  l.Wrapper
	metrics *metrics.Collectors
	rootCut float64
}

// WithLogger sets the structured logger.
func WithLogger(logger l.Wrapper) Option {
	return func(o *Options) { o.logger = logger }
}

// WithMetrics records unsolved sweep points.
func WithMetrics(m *metrics.Collectors) Option {
	return func(o *Options) { o.metrics = m }
}

// WithAcousticRootCut sets the root cut-out of the acoustic mesh.
func WithAcousticRootCut(rc float64) Option {
	if rc < 0 || rc >= 1 {
		panic(panicRootCutInvalid)
	}

	return func(o *Options) { o.rootCut = rc }
}

func gatherOptions(user ...Option) Options {
	o := Options{rootCut: propeller.DefaultRootCut}
	for _, set := range user {
		set(&o)
	}
	if o.logger == nil {
		o.logger = l.NewNopLoggerWrapper()
	}

	return o
}
