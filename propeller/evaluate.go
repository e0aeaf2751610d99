// SPDX-License-Identifier: MIT

package propeller

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/atmosphere"
	"github.com/katalvlaran/propel/blade"
	"github.com/katalvlaran/propel/metrics"
)

// Performance is one mesh integration at fixed controls.
type Performance struct {
	Thrust                    float64 // N
	Torque                    float64 // N·m
	Power                     float64 // W
	ThrustCoefficient         float64 // required, on the effective area
	ThrustCoefficientObtained float64
	TipLoss                   float64
	Inflow                    Inflow
}

// cell is the state of one mesh element handed to a visitor. Lift and
// Drag are in newtons for dimensional integrations and plain CL/CD
// otherwise.
type cell struct {
	R, Span, Psi float64
	Props        blade.Properties
	Velocity     Vector
	Speed        float64
	Phi          float64 // inflow angle, rad
	Alpha        float64 // deg
	Lift, Drag   float64
}

// operating bundles the inputs one integration depends on besides the
// controls.
type operating struct {
	env     atmosphere.Snapshot
	thrust  float64
	tilt    float64
	rootCut float64
}

// integrate runs one BEMT evaluation at (pitch, omega).
//
// Implementation:
//   - Stage 1: Ct and tip loss by SolveDisk; induced inflow by
//     InducedVelocity at angle AoA + tilt.
//   - Stage 2: Walk the radial×azimuthal mesh between rc·R and F·R; per
//     cell build the velocity triangle, look up CL/CD at the local
//     Reynolds and Mach numbers, and accumulate dT and dQ.
//   - Stage 3: Scale the sums by B/Nψ and form Ct_obtained and power.
//
// When dimensional is false the store is queried with multiplier 1 and
// the totals are left at zero. visit may be nil.
func (p *Propeller) integrate(op operating, pitch, omega float64, dimensional bool, visit func(*cell)) (Performance, error) {
	b := p.blade
	radius := b.Radius()
	rho := op.env.Density

	disk, err := SolveDisk(op.thrust, rho, omega, radius, b.Blades(), op.rootCut)
	if err != nil {
		if isConvergence(err) {
			p.opts.metrics.ConvergenceFailure(metrics.StageThrust)
		}
		return Performance{}, err
	}
	in, err := InducedVelocity(disk.ThrustCoefficient, omega, radius, op.env.Velocity, op.env.AngleOfAttack+op.tilt)
	if err != nil {
		p.opts.metrics.ConvergenceFailure(metrics.StageInflow)
		return Performance{}, err
	}

	nR, nPsi := b.Mesh()
	inner, outer := op.rootCut*radius, radius*disk.TipLoss
	station := func(i int) float64 { return inner + (outer-inner)*float64(i)/float64(nR-1) }

	var thrust, torque float64
	supersonic := false
	for k := 0; k < nPsi; k++ {
		psi := 0.0
		if nPsi > 1 {
			psi = float64(k) * 360 / float64(nPsi-1)
		}
		cosPsi, sinPsi := math.Cos(psi*math.Pi/180), math.Sin(psi*math.Pi/180)
		for j := 0; j < nR-1; j++ {
			r, span := station(j), station(j+1)-station(j)
			props := b.At(r / radius)

			vel := Vector{
				X: r*omega + in.Forward*cosPsi,
				Y: in.Forward * sinPsi,
				Z: in.Local(r, radius, psi),
			}
			speed := math.Hypot(vel.X, vel.Z)
			if speed >= op.env.SpeedOfSound {
				supersonic = true
			}
			phi := math.Atan(vel.Z / vel.X)
			alpha := props.Twist + pitch - phi*180/math.Pi
			re := rho * speed * props.Chord / op.env.Viscosity
			mach := speed / op.env.SpeedOfSound

			mult := 1.0
			if dimensional {
				mult = 0.5 * rho * speed * speed * props.Chord * span
			}
			lift, drag, err := b.Aero(r/radius, alpha, re, mach, mult)
			if err != nil {
				return Performance{}, fmt.Errorf("section r=%g alpha=%g: %w", r, alpha, err)
			}
			sin, cos := math.Sin(phi), math.Cos(phi)
			thrust += lift*cos - drag*sin
			torque += r * (lift*sin + drag*cos)

			if visit != nil {
				visit(&cell{
					R: r, Span: span, Psi: psi,
					Props:    props,
					Velocity: vel,
					Speed:    speed,
					Phi:      phi,
					Alpha:    alpha,
					Lift:     lift,
					Drag:     drag,
				})
			}
		}
	}
	if supersonic {
		p.log.WithFields(l.Float64Field("pitch", pitch), l.Float64Field("omega", omega)).
			Warn("sectional speed reached the speed of sound")
	}

	perf := Performance{
		ThrustCoefficient: disk.ThrustCoefficient,
		TipLoss:           disk.TipLoss,
		Inflow:            in,
	}
	if !dimensional {
		return perf, nil
	}
	scale := float64(b.Blades()) / float64(nPsi)
	tip := omega * radius
	perf.Thrust = thrust * scale
	perf.Torque = torque * scale
	perf.Power = perf.Torque * omega
	perf.ThrustCoefficientObtained = perf.Thrust / (rho * disk.EffectiveArea * tip * tip)
	if math.IsNaN(perf.ThrustCoefficientObtained) || math.IsNaN(perf.Power) {
		return Performance{}, fmt.Errorf("pitch %g, omega %g: %w", pitch, omega, ErrNumericInvalid)
	}

	return perf, nil
}

// Evaluate integrates the mesh once at the given controls for the thrust
// and disk tilt last set with SetThrust. The trim state is unchanged.
func (p *Propeller) Evaluate(pitch, rpm float64) (Performance, error) {
	op, err := p.operating(p.opts.rootCut)
	if err != nil {
		return Performance{}, err
	}

	return p.integrate(op, pitch, rpm, true, nil)
}

// operating resolves the atmosphere and bundles the current inputs.
func (p *Propeller) operating(rootCut float64) (operating, error) {
	if p.state == StateUninitialized {
		return operating{}, ErrConfiguration
	}
	env := p.env.Value()
	if env == nil {
		return operating{}, fmt.Errorf("%s: atmosphere released: %w", p.name, ErrConfiguration)
	}

	return operating{env: env.Snapshot(), thrust: p.thrust, tilt: p.tilt, rootCut: rootCut}, nil
}
