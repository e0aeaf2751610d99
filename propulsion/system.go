// SPDX-License-Identifier: MIT

package propulsion

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"

	"github.com/katalvlaran/propel/acoustics"
	"github.com/katalvlaran/propel/atmosphere"
	"github.com/katalvlaran/propel/blade"
	"github.com/katalvlaran/propel/propeller"
)

// System is a set of propellers flying in one atmosphere.
type System struct {
	opts  Options
	log   l.Wrapper
	env   *atmosphere.Atmosphere
	props []*propeller.Propeller

	thrustX, thrustZ float64
}

// New evaluates the atmosphere for c and returns an empty system.
func New(c atmosphere.Conditions, opts ...Option) (*System, error) {
	env, err := atmosphere.New(c)
	if err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	return &System{
		opts: o,
		log:  o.logger.WithFields(l.StringField(l.ClsKey, "propulsion.System")),
		env:  env,
	}, nil
}

// Atmosphere returns the owned atmosphere.
func (s *System) Atmosphere() *atmosphere.Atmosphere { return s.env }

// Add attaches p to the system atmosphere with the given blade and
// controller.
func (s *System) Add(p *propeller.Propeller, b *blade.Blade, ctrl propeller.Controller) error {
	for _, q := range s.props {
		if q.Name() == p.Name() {
			return fmt.Errorf("%q: %w", p.Name(), ErrDuplicateName)
		}
	}
	if err := p.Attach(b, ctrl, s.env); err != nil {
		return err
	}
	s.props = append(s.props, p)

	return nil
}

// Propellers returns the propellers in insertion order.
func (s *System) Propellers() []*propeller.Propeller {
	return append([]*propeller.Propeller(nil), s.props...)
}

// Len returns the number of propellers.
func (s *System) Len() int { return len(s.props) }

// RequiredThrust returns the last force set with SetRequiredThrust.
func (s *System) RequiredThrust() (x, z float64) { return s.thrustX, s.thrustZ }

// SetRequiredThrust sets the total force (N) in the body x/z plane. Each
// propeller gets |F|/n at disk tilt atan2(z, x) degrees.
func (s *System) SetRequiredThrust(x, z float64) {
	s.thrustX, s.thrustZ = x, z
	each, tilt := s.split()
	for _, p := range s.props {
		p.SetThrust(each, tilt)
	}
}

// DiskTilt is the tilt in degrees given to every disk by the last
// SetRequiredThrust.
func (s *System) DiskTilt() float64 {
	_, tilt := s.split()

	return tilt
}

// split returns the per-propeller thrust and the common disk tilt.
func (s *System) split() (each, tilt float64) {
	if len(s.props) == 0 {
		return 0, 0
	}
	x, z := s.thrustX, s.thrustZ
	if x != 0 || z != 0 {
		tilt = math.Atan2(z, x) * 180 / math.Pi
	}

	return math.Hypot(x, z) / float64(len(s.props)), tilt
}

// Solve trims every propeller concurrently at the current required
// thrust. Failures are joined; the remaining propellers still finish.
func (s *System) Solve(ctx context.Context) error {
	if len(s.props) == 0 {
		return ErrNoPropellers
	}
	each, tilt := s.split()
	errs := make([]error, len(s.props))
	s.fanOut(ctx, "solve", func(i int, p *propeller.Propeller) {
		_, errs[i] = p.SolveThrust(each, tilt)
	})

	return errors.Join(errs...)
}

// SolveAcoustics computes the tone of every trimmed propeller at obs.
// Untrimmed propellers are skipped and reported in the joined error.
func (s *System) SolveAcoustics(ctx context.Context, obs acoustics.Observer) error {
	errs := make([]error, len(s.props))
	s.fanOut(ctx, "acoustics", func(i int, p *propeller.Propeller) {
		_, errs[i] = p.SolveAcoustics(obs.Distance, obs.Elevation, s.opts.rootCut)
	})

	return errors.Join(errs...)
}

// fanOut runs fn once per propeller on its own routine and waits.
// Propellers not started before ctx ends are skipped.
func (s *System) fanOut(ctx context.Context, stage string, fn func(i int, p *propeller.Propeller)) {
	rm := routineman.NewRoutineMan(ctx, s.log)
	for i, p := range s.props {
		if ctx.Err() != nil {
			break
		}
		rm.StartRoutine(func(context.Context, func() bool) { fn(i, p) }, stage+":"+p.Name())
	}
	rm.Wait()
}

// PowerRequired returns the summed trimmed power in W, or
// math.MaxFloat64 when any propeller is not trimmed.
func (s *System) PowerRequired() float64 {
	var sum float64
	for _, p := range s.props {
		if p.State() != propeller.StateTrimmed {
			return math.MaxFloat64
		}
		sum += p.Result().Power
	}

	return sum
}

// SoundPressureLevel returns the energetic sum of the propeller levels
// from the last SolveAcoustics, in dB.
func (s *System) SoundPressureLevel() float64 {
	levels := make([]float64, len(s.props))
	for i, p := range s.props {
		levels[i] = p.SoundPressureLevel()
	}

	return acoustics.Combine(levels...)
}

// Pitches returns the current pitch of each propeller in degrees.
func (s *System) Pitches() []float64 {
	return s.collect(func(p *propeller.Propeller) float64 { return p.Controller().Pitch })
}

// RPMs returns the current rotational speed of each propeller in rad/s.
func (s *System) RPMs() []float64 {
	return s.collect(func(p *propeller.Propeller) float64 { return p.Controller().RPM })
}

// Errors returns the relative thrust-coefficient error of each propeller.
func (s *System) Errors() []float64 {
	return s.collect(func(p *propeller.Propeller) float64 { return p.Error() })
}

func (s *System) collect(get func(*propeller.Propeller) float64) []float64 {
	out := make([]float64, len(s.props))
	for i, p := range s.props {
		out[i] = get(p)
	}

	return out
}

// PropellerSolution is the state of one propeller after a solve.
type PropellerSolution struct {
	Name   string           `json:"name"`
	Result propeller.Result `json:"result"`
	SPL    float64          `json:"spl"`
}

// Solution is the system state after a solve.
type Solution struct {
	Power      float64             `json:"power"`
	SPL        float64             `json:"spl"`
	Propellers []PropellerSolution `json:"propellers"`
}

// Solution snapshots the current results.
func (s *System) Solution() Solution {
	sol := Solution{Power: s.PowerRequired(), SPL: s.SoundPressureLevel()}
	for _, p := range s.props {
		sol.Propellers = append(sol.Propellers, PropellerSolution{
			Name:   p.Name(),
			Result: p.Result(),
			SPL:    p.SoundPressureLevel(),
		})
	}
	s.log.WithFields(
		l.Float64Field("power", sol.Power),
		l.Float64Field("spl", sol.SPL),
	).Debug("solution")

	return sol
}
