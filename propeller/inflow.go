// SPDX-License-Identifier: MIT

package propeller

import (
	"fmt"
	"math"
)

// Disk is the momentum-theory state of the rotor at one operating point.
type Disk struct {
	ThrustCoefficient float64 // required Ct on the effective area
	TipLoss           float64 // F
	EffectiveArea     float64 // π·R²·(F² - rc²), m²
}

// SolveDisk refines Ct and the tip-loss factor together. thrust in N,
// density in kg/m³, omega in rad/s, radius in m, rootCut a fraction of
// the radius.
func SolveDisk(thrust, density, omega, radius float64, blades int, rootCut float64) (Disk, error) {
	area := math.Pi * radius * radius
	tip := omega * radius
	ct := thrust / (density * area * tip * tip)
	for it := 0; it < DefaultTipLossIterations; it++ {
		if !(ct >= 0) || ct > DefaultMaxThrustCoefficient {
			return Disk{}, fmt.Errorf("Ct %g at Ω %g: %w", ct, omega, ErrThrustCoefficient)
		}
		f := 1 - math.Sqrt(2*ct)/float64(blades)
		ae := area * (f*f - rootCut*rootCut)
		if f < 0 || !(ae > 0) {
			return Disk{}, fmt.Errorf("tip loss %g, area %g: %w", f, ae, ErrThrustCoefficient)
		}
		next := thrust / (density * ae * tip * tip)
		if math.Abs(next-ct) <= DefaultTipLossTol*next {
			if next > DefaultMaxThrustCoefficient {
				return Disk{}, fmt.Errorf("Ct %g: %w", next, ErrThrustCoefficient)
			}

			return Disk{ThrustCoefficient: next, TipLoss: f, EffectiveArea: ae}, nil
		}
		ct = next
	}

	return Disk{}, fmt.Errorf("tip-loss fixed point after %d iterations: %w", DefaultTipLossIterations, ErrConvergenceFailure)
}

// Inflow is the rotor inflow split along and across the disk axis.
type Inflow struct {
	Velocity float64 // total axial inflow through the disk, m/s
	Advance  float64 // freestream component along the axis, m/s
	Forward  float64 // freestream component in the disk plane, m/s
}

// Skew returns the wake skew angle atan(Forward/Velocity) in radians.
func (in Inflow) Skew() float64 {
	return math.Atan(in.Forward / in.Velocity)
}

// Local returns the inflow at radius r (tip radius R) and azimuth psi
// degrees with the first-harmonic correction
// v·(1 + Kx·cosψ·r/R), Kx = (15π/32)·tan(X/2).
func (in Inflow) Local(r, R, psi float64) float64 {
	x := in.Skew()
	if x == 0 || math.IsNaN(x) {
		return in.Velocity
	}
	kx := 15 * math.Pi / 32 * math.Tan(x/2)

	return in.Velocity * (1 + kx*math.Cos(psi*math.Pi/180)*r/R)
}

// InducedVelocity solves the momentum inflow for thrust coefficient ct at
// rotor speed omega and radius R, in a freestream of speed velocity at
// angle degrees to the disk axis (angle of attack plus disk tilt).
//
// Implementation:
//   - Axial flight (angle == 0): v = V/2 + sqrt(V²/4 + v_h²).
//   - Otherwise a secant on f(v) = V·cosα + v_h²/hypot(V·sinα, v) - v
//     from seeds v_h and 2·v_h, at most DefaultInflowIterations steps,
//     stopping once the step is below DefaultInflowTol.
//
// Here v_h² = (Ct/2)·(ΩR)². Budget exhaustion or a flat residual returns
// ErrConvergenceFailure.
func InducedVelocity(ct, omega, radius, velocity, angle float64) (Inflow, error) {
	tip := omega * radius
	vh2 := ct / 2 * tip * tip
	if angle == 0 {
		return Inflow{
			Velocity: velocity/2 + math.Sqrt(velocity*velocity/4+vh2),
			Advance:  velocity,
		}, nil
	}
	rad := angle * math.Pi / 180
	adv, fwd := velocity*math.Cos(rad), velocity*math.Sin(rad)
	residual := func(v float64) float64 { return adv + vh2/math.Hypot(fwd, v) - v }

	a := math.Sqrt(vh2)
	b := 2 * a
	if a == 0 {
		b = 1
	}
	for it := 0; it < DefaultInflowIterations; it++ {
		fa, fb := residual(a), residual(b)
		slope := (fa - fb) / (a - b)
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			break
		}
		a, b = b, b-fb/slope
		if math.Abs(b-a) <= DefaultInflowTol {
			return Inflow{Velocity: b, Advance: adv, Forward: fwd}, nil
		}
	}

	return Inflow{}, fmt.Errorf("induced velocity at Ct %g, V %g, angle %g: %w", ct, velocity, angle, ErrConvergenceFailure)
}
