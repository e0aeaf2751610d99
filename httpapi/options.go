// SPDX-License-Identifier: MIT

package httpapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/metrics"
)

const (
	// DefaultRate is the sustained requests per second per client.
	DefaultRate = 1.0
	// DefaultBurst is the token bucket size per client.
	DefaultBurst = 3
	// DefaultClientTTL is how long an idle client bucket is kept.
	DefaultClientTTL = 10 * time.Minute
	// DefaultSolveTimeout bounds one POST /api/solve.
	DefaultSolveTimeout = 2 * time.Minute
	// DefaultMaxBody bounds request bodies in bytes.
	DefaultMaxBody = 1 << 20
)

const (
	panicRateInvalid    = "httpapi: WithRateLimit: need rate > 0 and burst >= 1"
	panicTimeoutInvalid = "httpapi: WithSolveTimeout: timeout must be > 0"
)

// Option configures a Server.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	logger       l.Wrapper
	metrics      *metrics.Collectors
	gatherer     prometheus.Gatherer
	rate         float64
	burst        int
	clientTTL    time.Duration
	solveTimeout time.Duration
}

// WithLogger sets the structured logger.
func WithLogger(logger l.Wrapper) Option {
	return func(o *Options) { o.logger = logger }
}

// WithMetrics passes collectors to the systems built per request.
func WithMetrics(m *metrics.Collectors) Option {
	return func(o *Options) { o.metrics = m }
}

// WithGatherer selects what /metrics exposes. Default is
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *Options) { o.gatherer = g }
}

// WithRateLimit sets the per-client token bucket.
func WithRateLimit(rate float64, burst int) Option {
	if !(rate > 0) || burst < 1 {
		panic(panicRateInvalid)
	}

	return func(o *Options) { o.rate, o.burst = rate, burst }
}

// WithSolveTimeout bounds one sweep request.
func WithSolveTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(panicTimeoutInvalid)
	}

	return func(o *Options) { o.solveTimeout = d }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		gatherer:     prometheus.DefaultGatherer,
		rate:         DefaultRate,
		burst:        DefaultBurst,
		clientTTL:    DefaultClientTTL,
		solveTimeout: DefaultSolveTimeout,
	}
	for _, set := range user {
		set(&o)
	}
	if o.logger == nil {
		o.logger = l.NewNopLoggerWrapper()
	}

	return o
}
