package propeller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/propel/propeller"
)

// TestParseMode verifies names round-trip through String and unknown names fail.
func TestParseMode(t *testing.T) {
	for _, m := range []propeller.Mode{propeller.ModePitch, propeller.ModeRPM, propeller.ModeBoth} {
		got, err := propeller.ParseMode(" " + m.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := propeller.ParseMode("BOTH")
	require.NoError(t, err)
	assert.Equal(t, propeller.ModeBoth, got)

	_, err = propeller.ParseMode("collective")
	assert.ErrorIs(t, err, propeller.ErrBadController)
	assert.Equal(t, "Mode(7)", propeller.Mode(7).String())
}

// TestController_Coordinates verifies X, Apply and Bounds per mode.
func TestController_Coordinates(t *testing.T) {
	c := propeller.NewController(propeller.ModePitch, 60, 5)
	assert.Equal(t, []float64{5}, c.X())
	lo, hi := c.Bounds()
	assert.Equal(t, []float64{0}, lo)
	assert.Equal(t, []float64{90}, hi)
	c.Apply([]float64{12})
	assert.Equal(t, 12.0, c.Pitch)
	assert.Equal(t, 60.0, c.RPM)

	c = propeller.NewController(propeller.ModeRPM, 60, 5)
	assert.Equal(t, []float64{60}, c.X())
	lo, hi = c.Bounds()
	assert.Equal(t, []float64{0}, lo)
	assert.Equal(t, []float64{100}, hi)
	c.Apply([]float64{70})
	assert.Equal(t, 70.0, c.RPM)

	c = propeller.NewController(propeller.ModeBoth, 60, 5)
	assert.Equal(t, 2, c.Free())
	assert.Equal(t, []float64{60, 5}, c.X())
	lo, hi = c.Bounds()
	assert.Equal(t, []float64{0, 0}, lo)
	assert.Equal(t, []float64{100, 90}, hi)
	c.Apply([]float64{40, 8})
	assert.Equal(t, 40.0, c.RPM)
	assert.Equal(t, 8.0, c.Pitch)

	// Bounds must not alias the controller arrays.
	lo[0] = -1
	assert.Equal(t, 0.0, c.Lower[0])
}

// TestController_Validate verifies mode and bound checks.
func TestController_Validate(t *testing.T) {
	assert.NoError(t, propeller.NewController(propeller.ModeBoth, 60, 5).Validate())

	c := propeller.NewController(propeller.Mode(9), 60, 5)
	assert.ErrorIs(t, c.Validate(), propeller.ErrBadController)

	c = propeller.NewController(propeller.ModePitch, 60, 5)
	c.Lower[1], c.Upper[1] = 30, 10
	assert.ErrorIs(t, c.Validate(), propeller.ErrBadController)

	// the inverted rpm bound is ignored while only pitch is free
	c = propeller.NewController(propeller.ModePitch, 60, 5)
	c.Lower[0], c.Upper[0] = 100, 0
	assert.NoError(t, c.Validate())

	c = propeller.NewController(propeller.ModeBoth, 60, 5)
	c.Upper[0] = 0
	assert.ErrorIs(t, c.Validate(), propeller.ErrBadController)
}

// TestState_Text verifies state names encode and decode.
func TestState_Text(t *testing.T) {
	b, err := propeller.StateTrimmed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "trimmed", string(b))

	var s propeller.State
	require.NoError(t, s.UnmarshalText([]byte("failed")))
	assert.Equal(t, propeller.StateFailed, s)
	assert.ErrorIs(t, s.UnmarshalText([]byte("spinning")), propeller.ErrBadState)
	assert.Equal(t, "unknown", propeller.State(42).String())
}
