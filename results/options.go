// SPDX-License-Identifier: MIT

package results

import (
	"time"

	"github.com/sgostarter/i/l"
)

// Option configures a Store.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	logger l.Wrapper
	now    func() time.Time
}

// WithLogger sets the structured logger.
func WithLogger(logger l.Wrapper) Option {
	return func(o *Options) { o.logger = logger }
}

// WithClock overrides the run timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.now = now }
}

func gatherOptions(user ...Option) Options {
	o := Options{now: time.Now}
	for _, set := range user {
		set(&o)
	}
	if o.logger == nil {
		o.logger = l.NewNopLoggerWrapper()
	}

	return o
}
