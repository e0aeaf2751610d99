// SPDX-License-Identifier: MIT

package propulsion

import (
	"context"
	"fmt"

	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/acoustics"
	"github.com/katalvlaran/propel/atmosphere"
	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/propeller"
)

// OperatingPoint is one flight condition of a sweep.
type OperatingPoint struct {
	Conditions atmosphere.Conditions `json:"conditions" yaml:"conditions"`
	ThrustX    float64               `json:"thrust_x" yaml:"thrust_x"`
	ThrustZ    float64               `json:"thrust_z" yaml:"thrust_z"`
	Observer   *acoustics.Observer   `json:"observer,omitempty" yaml:"observer,omitempty"`
}

// Failure is one propeller that did not solve at a point.
type Failure struct {
	Propeller string `json:"propeller"`
	Error     string `json:"error"`
}

// Outcome is the result of one sweep point. Err is set when the point
// could not be solved at all; propeller failures go to Failures.
type Outcome struct {
	Point    OperatingPoint `json:"point"`
	Solution Solution       `json:"solution"`
	Failures []Failure      `json:"failures,omitempty"`
	Err      error          `json:"-"`
}

// OK reports whether every propeller trimmed.
func (o Outcome) OK() bool { return o.Err == nil && len(o.Failures) == 0 }

// Sweep solves points in order, trimming the propellers of each point
// concurrently. A failed point or propeller is recorded and the sweep goes
// on; points left when ctx ends carry ErrUnsolved.
func (s *System) Sweep(ctx context.Context, points []OperatingPoint) []Outcome {
	out := make([]Outcome, len(points))
	for i, pt := range points {
		out[i] = s.solvePoint(ctx, pt)
		if out[i].Err != nil {
			s.opts.metrics.Solve(metrics.OutcomeUnsolved)
			s.log.WithFields(l.IntField("point", i), l.ErrorField(out[i].Err)).Warn("sweep point unsolved")
		}
	}

	return out
}

func (s *System) solvePoint(ctx context.Context, pt OperatingPoint) Outcome {
	o := Outcome{Point: pt}
	if err := ctx.Err(); err != nil {
		o.Err = fmt.Errorf("%w: %w", ErrUnsolved, err)
		return o
	}
	if len(s.props) == 0 {
		o.Err = fmt.Errorf("%w: %w", ErrUnsolved, ErrNoPropellers)
		return o
	}
	if err := s.env.Reset(pt.Conditions); err != nil {
		o.Err = fmt.Errorf("%w: %w", ErrUnsolved, err)
		return o
	}
	s.SetRequiredThrust(pt.ThrustX, pt.ThrustZ)

	errs := make([]error, len(s.props))
	for i := range errs {
		errs[i] = ErrUnsolved
	}
	each, tilt := s.split()
	s.fanOut(ctx, "sweep", func(i int, p *propeller.Propeller) {
		errs[i] = nil
		if _, err := p.SolveThrust(each, tilt); err != nil {
			errs[i] = err
			return
		}
		if pt.Observer != nil {
			_, errs[i] = p.SolveAcoustics(pt.Observer.Distance, pt.Observer.Elevation, s.opts.rootCut)
		}
	})
	for i, err := range errs {
		if err != nil {
			o.Failures = append(o.Failures, Failure{Propeller: s.props[i].Name(), Error: err.Error()})
		}
	}
	o.Solution = s.Solution()

	return o
}
