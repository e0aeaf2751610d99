package propeller_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/propel/propeller"
)

// TestSolveDisk verifies the Ct/tip-loss fixed point and its range checks.
func TestSolveDisk(t *testing.T) {
	d, err := propeller.SolveDisk(50, 1.225, 50, 1, 2, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0058752678, d.ThrustCoefficient, 1e-9)
	assert.InDelta(t, 0.9458000565, d.TipLoss, 1e-9)
	assert.InDelta(t, 2.7788572873, d.EffectiveArea, 1e-9)
	// self-consistency of the fixed point
	assert.InDelta(t, 1-math.Sqrt(2*d.ThrustCoefficient)/2, d.TipLoss, 1e-6)

	d, err = propeller.SolveDisk(0, 1.225, 50, 1, 2, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.ThrustCoefficient)
	assert.Equal(t, 1.0, d.TipLoss)

	_, err = propeller.SolveDisk(5000, 1.225, 10, 1, 2, 0.1)
	assert.ErrorIs(t, err, propeller.ErrThrustCoefficient)

	_, err = propeller.SolveDisk(50, 1.225, 0, 1, 2, 0.1)
	assert.ErrorIs(t, err, propeller.ErrThrustCoefficient)

	_, err = propeller.SolveDisk(-1, 1.225, 50, 1, 2, 0.1)
	assert.ErrorIs(t, err, propeller.ErrThrustCoefficient)
}

// TestInducedVelocity_Hover verifies the axial closed form and that a
// nearly axial secant solve lands on it.
func TestInducedVelocity_Hover(t *testing.T) {
	in, err := propeller.InducedVelocity(0.005, 50, 1, 10, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5+math.Sqrt(25+6.25), in.Velocity, 1e-12)
	assert.Equal(t, 10.0, in.Advance)
	assert.Equal(t, 0.0, in.Forward)

	near, err := propeller.InducedVelocity(0.005, 50, 1, 10, 1e-9)
	require.NoError(t, err)
	assert.InDelta(t, in.Velocity, near.Velocity, 1e-3)

	static, err := propeller.InducedVelocity(0.005, 50, 1, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, static.Velocity, 1e-12)
}

// TestInducedVelocity_ForwardFlight verifies the secant root satisfies the
// momentum balance in edgewise and oblique flow.
func TestInducedVelocity_ForwardFlight(t *testing.T) {
	vh2 := 0.005 / 2 * 50 * 50
	for _, tc := range []struct {
		v, angle float64
	}{{10, 90}, {30, 30}, {0, 30}} {
		in, err := propeller.InducedVelocity(0.005, 50, 1, tc.v, tc.angle)
		require.NoError(t, err)
		rad := tc.angle * math.Pi / 180
		assert.InDelta(t, tc.v*math.Cos(rad), in.Advance, 1e-12)
		assert.InDelta(t, tc.v*math.Sin(rad), in.Forward, 1e-12)
		residual := in.Advance + vh2/math.Hypot(in.Forward, in.Velocity) - in.Velocity
		assert.InDelta(t, 0, residual, 1e-4, "V=%g angle=%g", tc.v, tc.angle)
	}
}

// TestInducedVelocity_Failure verifies an undefined residual is reported
// as a convergence failure.
func TestInducedVelocity_Failure(t *testing.T) {
	_, err := propeller.InducedVelocity(0, 50, 1, 0, 10)
	assert.ErrorIs(t, err, propeller.ErrConvergenceFailure)
}

// TestInflow_Local verifies the first-harmonic correction.
func TestInflow_Local(t *testing.T) {
	axial := propeller.Inflow{Velocity: 3, Advance: 0}
	assert.Equal(t, 3.0, axial.Local(0.5, 1, 0))

	in := propeller.Inflow{Velocity: 2, Forward: 2}
	x := math.Pi / 4
	kx := 15 * math.Pi / 32 * math.Tan(x/2)
	assert.InDelta(t, x, in.Skew(), 1e-12)
	assert.InDelta(t, 2*(1+kx), in.Local(1, 1, 0), 1e-12)
	assert.InDelta(t, 2*(1-kx/2), in.Local(0.5, 1, 180), 1e-12)
	assert.InDelta(t, 2, in.Local(1, 1, 90), 1e-12)
}
