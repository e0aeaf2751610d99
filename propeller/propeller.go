// SPDX-License-Identifier: MIT

package propeller

import (
	"errors"
	"fmt"
	"math"
	"weak"

	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/atmosphere"
	"github.com/katalvlaran/propel/blade"
	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/optim"
)

// Result is the outcome of one thrust solve.
type Result struct {
	Thrust                    float64 `json:"thrust"`          // required, N
	ThrustObtained            float64 `json:"thrust_obtained"` // N
	Power                     float64 `json:"power"`           // W
	Torque                    float64 `json:"torque"`          // N·m
	Pitch                     float64 `json:"pitch"`           // deg
	RPM                       float64 `json:"rpm"`             // rad/s
	ThrustCoefficient         float64 `json:"ct"`
	ThrustCoefficientObtained float64 `json:"ct_obtained"`
	Evaluations               int     `json:"evaluations"`
	State                     State   `json:"state"`
}

// Error returns |Ct_obtained - Ct_required| / Ct_required, or 0 when no
// thrust is required. Failed solves report math.MaxFloat64.
func (r Result) Error() float64 {
	if r.State == StateFailed {
		return math.MaxFloat64
	}
	if r.ThrustCoefficient == 0 {
		return 0
	}

	return math.Abs(r.ThrustCoefficientObtained-r.ThrustCoefficient) / r.ThrustCoefficient
}

// Propeller is one rotor with its controller and trim state.
type Propeller struct {
	name  string
	opts  Options
	log   l.Wrapper
	blade *blade.Blade
	ctrl  Controller
	env   weak.Pointer[atmosphere.Atmosphere]
	state State

	thrust float64
	tilt   float64
	result Result

	pressures    []complex128
	bladePassage float64
}

// New returns an unconfigured propeller.
func New(name string, opts ...Option) *Propeller {
	o := gatherOptions(opts...)

	return &Propeller{
		name: name,
		opts: o,
		log:  o.logger.WithFields(l.StringField(l.ClsKey, "propeller.Propeller"), l.StringField("propeller", name)),
	}
}

// Attach binds the blade, controller and atmosphere and moves the
// propeller to StateConfigured. The blade must carry a polar store. Only
// a weak reference to env is kept.
func (p *Propeller) Attach(b *blade.Blade, ctrl Controller, env *atmosphere.Atmosphere) error {
	if b == nil || env == nil {
		return fmt.Errorf("%s: nil blade or atmosphere: %w", p.name, ErrConfiguration)
	}
	if b.Polars() == nil {
		return fmt.Errorf("%s: blade has no polar store: %w", p.name, ErrConfiguration)
	}
	if err := ctrl.Validate(); err != nil {
		return err
	}
	p.blade = b
	p.ctrl = ctrl
	p.env = weak.Make(env)
	p.state = StateConfigured
	p.result = Result{}
	p.pressures = nil

	return nil
}

// Name returns the propeller name.
func (p *Propeller) Name() string { return p.name }

// State returns the trim state.
func (p *Propeller) State() State { return p.state }

// Controller returns a copy of the current controls.
func (p *Propeller) Controller() Controller { return p.ctrl }

// Blade returns the attached blade, or nil.
func (p *Propeller) Blade() *blade.Blade { return p.blade }

// Result returns the last solve result.
func (p *Propeller) Result() Result { return p.result }

// Error returns the relative thrust-coefficient error of the last solve.
func (p *Propeller) Error() float64 { return p.result.Error() }

// SetThrust stores the required thrust (N) and disk tilt (deg) used by
// Evaluate and the next trim.
func (p *Propeller) SetThrust(thrust, tilt float64) {
	p.thrust, p.tilt = thrust, tilt
}

// SolveThrust trims the free controls so the rotor produces thrust newtons
// at disk tilt degrees with minimum power.
//
// Implementation:
//   - Stage 1: Resolve the atmosphere; thrust 0 returns a zero result.
//   - Stage 2: optim.Minimize over the free controls with objective power
//     and constraint Ct_obtained - Ct_required = 0.
//   - Stage 3: Apply the best controls and integrate once more, feeding
//     the detailed sink.
//
// Returns:
//   - On budget exhaustion or an unusable start: power and Ct_obtained set
//     to math.MaxFloat64, StateFailed, the controller restored to its
//     starting values and an error wrapping ErrConvergenceFailure.
func (p *Propeller) SolveThrust(thrust, tilt float64) (Result, error) {
	p.SetThrust(thrust, tilt)
	op, err := p.operating(p.opts.rootCut)
	if err != nil {
		return Result{}, err
	}
	p.pressures = nil
	if thrust == 0 {
		p.state = StateTrimmed
		p.result = Result{Pitch: p.ctrl.Pitch, RPM: p.ctrl.RPM, State: StateTrimmed}
		p.opts.metrics.Solve(metrics.OutcomeTrimmed)

		return p.result, nil
	}

	p.state = StateConverging
	start := p.ctrl
	lower, upper := start.Bounds()
	problem := optim.Problem{
		Lower: lower,
		Upper: upper,
		Eval: func(x []float64) (float64, float64, error) {
			c := start
			c.Apply(x)
			perf, err := p.integrate(op, c.Pitch, c.RPM, true, nil)
			if err != nil {
				return 0, 0, err
			}

			return perf.Power, perf.ThrustCoefficientObtained - perf.ThrustCoefficient, nil
		},
	}
	res, err := optim.Minimize(problem, start.X(),
		optim.WithConstraintTol(p.opts.ctol),
		optim.WithXTolRel(p.opts.xtol),
		optim.WithMaxEval(p.opts.maxEval),
	)
	if err == nil && !res.Feasible {
		err = optim.ErrMaxEval
	}
	if err != nil {
		return p.fail(start, res.Evaluations, err), fmt.Errorf("%s: trim %g N: %w: %w", p.name, thrust, ErrConvergenceFailure, err)
	}

	p.ctrl.Apply(res.X)
	if s := p.opts.sink; s != nil {
		s.ResetVelocity()
		s.ResetAngleOfAttack()
		s.ResetForce()
	}
	perf, err := p.integrate(op, p.ctrl.Pitch, p.ctrl.RPM, true, p.record)
	if err != nil {
		return p.fail(start, res.Evaluations, err), fmt.Errorf("%s: trimmed point: %w", p.name, err)
	}

	p.state = StateTrimmed
	p.result = Result{
		Thrust:                    thrust,
		ThrustObtained:            perf.Thrust,
		Power:                     perf.Power,
		Torque:                    perf.Torque,
		Pitch:                     p.ctrl.Pitch,
		RPM:                       p.ctrl.RPM,
		ThrustCoefficient:         perf.ThrustCoefficient,
		ThrustCoefficientObtained: perf.ThrustCoefficientObtained,
		Evaluations:               res.Evaluations,
		State:                     StateTrimmed,
	}
	p.opts.metrics.Solve(metrics.OutcomeTrimmed)
	p.log.WithFields(
		l.Float64Field("power", perf.Power),
		l.Float64Field("pitch", p.ctrl.Pitch),
		l.Float64Field("rpm", p.ctrl.RPM),
		l.IntField("evaluations", res.Evaluations),
	).Debug("trimmed")

	return p.result, nil
}

// fail records a failed trim and returns the sentinel result.
func (p *Propeller) fail(start Controller, evaluations int, err error) Result {
	p.ctrl = start
	p.state = StateFailed
	p.result = Result{
		Thrust:                    p.thrust,
		Power:                     math.MaxFloat64,
		Pitch:                     start.Pitch,
		RPM:                       start.RPM,
		ThrustCoefficientObtained: math.MaxFloat64,
		Evaluations:               evaluations,
		State:                     StateFailed,
	}
	if errors.Is(err, optim.ErrMaxEval) {
		p.opts.metrics.ConvergenceFailure(metrics.StageTrim)
	}
	p.opts.metrics.Solve(metrics.OutcomeFailed)
	p.log.WithFields(l.IntField("evaluations", evaluations), l.ErrorField(err)).Warn("trim failed")

	return p.result
}

// record feeds one trimmed cell into the detailed sink.
func (p *Propeller) record(c *cell) {
	s := p.opts.sink
	if s == nil {
		return
	}
	sin, cos := math.Sin(c.Phi), math.Cos(c.Phi)
	s.AddVelocity(c.Velocity)
	s.AddAngleOfAttack(c.Alpha)
	s.AddForce(Vector{X: c.Lift*sin + c.Drag*cos, Z: c.Lift*cos - c.Drag*sin})
}

func isConvergence(err error) bool { return errors.Is(err, ErrConvergenceFailure) }
