package atmosphere_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/propel/atmosphere"
)

// TestSeaLevel verifies the standard-day values at zero altitude.
func TestSeaLevel(t *testing.T) {
	a, err := atmosphere.SeaLevel(20)
	require.NoError(t, err)
	assert.InDelta(t, 288.15, a.Temperature(), 1e-12)
	assert.InDelta(t, 1.225, a.Density(), 1e-12)
	assert.InDelta(t, 101325, a.Pressure(), 1e-9)
	assert.InDelta(t, 340.29, a.SpeedOfSound(), 0.01)
	assert.InDelta(t, 1.8164e-5, a.Viscosity(), 1e-8)
	assert.InDelta(t, 0.5*1.225*400, a.DynamicPressure(), 1e-9)
	assert.InDelta(t, 0.5*1.225*100, a.DynamicPressureAt(10), 1e-9)
}

// TestAltitude verifies the lapse at 1 km with a temperature offset.
func TestAltitude(t *testing.T) {
	a, err := atmosphere.New(atmosphere.Conditions{Altitude: 1000, TemperatureOffset: 10, Velocity: 50, AngleOfAttack: 3})
	require.NoError(t, err)
	assert.InDelta(t, 291.65, a.Temperature(), 1e-9)
	assert.InDelta(t, 1.225*math.Pow(1-22.558e-3, 4.2559), a.Density(), 1e-12)
	assert.InDelta(t, 101325*math.Pow(1-6.5/291.65, 5.2561), a.Pressure(), 1e-6)
	assert.Equal(t, 3.0, a.AngleOfAttack())

	s := a.Snapshot()
	assert.Equal(t, a.Density(), s.Density)
	assert.Equal(t, 50.0, s.Velocity)
}

// TestReset_Invalid verifies rejected points keep the previous state.
func TestReset_Invalid(t *testing.T) {
	a, err := atmosphere.SeaLevel(0)
	require.NoError(t, err)

	assert.ErrorIs(t, a.Reset(atmosphere.Conditions{Altitude: 50000}), atmosphere.ErrAltitudeRange)
	assert.ErrorIs(t, a.Reset(atmosphere.Conditions{Velocity: -1}), atmosphere.ErrBadConditions)
	assert.ErrorIs(t, a.Reset(atmosphere.Conditions{Velocity: math.NaN()}), atmosphere.ErrBadConditions)
	assert.ErrorIs(t, a.Reset(atmosphere.Conditions{TemperatureOffset: -300}), atmosphere.ErrBadConditions)
	assert.InDelta(t, 1.225, a.Density(), 1e-12)

	require.NoError(t, a.Reset(atmosphere.Conditions{Altitude: 2000, Velocity: 10}))
	assert.Less(t, a.Density(), 1.225)
	assert.Equal(t, 10.0, a.Velocity())
}
