package polar_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/propel/polar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeTraining_MissingKey verifies a missing CL array is a data-format error naming the key.
func TestDecodeTraining_MissingKey(t *testing.T) {
	_, err := polar.DecodeTraining(strings.NewReader(`{"CD":[0.01],"Re":[1e5],"alpha":[0],"mach":[0]}`))
	require.ErrorIs(t, err, polar.ErrDataFormat)
	assert.Contains(t, err.Error(), `"CL"`)
}

// TestDecodeTraining_NotArray verifies scalar values are rejected.
func TestDecodeTraining_NotArray(t *testing.T) {
	_, err := polar.DecodeTraining(strings.NewReader(`{"CL":1,"CD":[0.01],"Re":[1e5],"alpha":[0],"mach":[0]}`))
	assert.ErrorIs(t, err, polar.ErrDataFormat)

	_, err = polar.DecodeTraining(strings.NewReader(`[1,2,3]`))
	assert.ErrorIs(t, err, polar.ErrDataFormat)

	_, err = polar.DecodeTraining(strings.NewReader(`{"CL":["x"],"CD":[0.01],"Re":[1e5],"alpha":[0],"mach":[0]}`))
	assert.ErrorIs(t, err, polar.ErrDataFormat)
}

// TestDecodeTraining_Lenient verifies numeric strings are accepted.
func TestDecodeTraining_Lenient(t *testing.T) {
	td, err := polar.DecodeTraining(strings.NewReader(`{"CL":["0.5",0.6],"CD":[0.01,"0.02"],"Re":["1e5",1e5],"alpha":[1,2],"mach":[0,0]}`))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.6}, td.CL)
	assert.Equal(t, []float64{0.01, 0.02}, td.CD)
	assert.Equal(t, []float64{1e5, 1e5}, td.Re)
}

// TestDecodeCoordinates_Shift verifies x is recentred and thickness read.
func TestDecodeCoordinates_Shift(t *testing.T) {
	c, err := polar.DecodeCoordinates(strings.NewReader(
		`{"UPPER_X_COORD":[0,1],"UPPER_Y_COORD":[0,0.05],"LOWER_X_COORD":[0,1],"LOWER_Y_COORD":[0,-0.05],"MAX_THICKNESS":0.1}`))
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.5, 0.5}, c.UpperX)
	assert.Equal(t, []float64{-0.5, 0.5}, c.LowerX)
	assert.Equal(t, 0.1, c.MaxThickness)

	_, err = polar.DecodeCoordinates(strings.NewReader(
		`{"UPPER_X_COORD":[0,1],"UPPER_Y_COORD":[0,0.05],"LOWER_X_COORD":[0,1],"LOWER_Y_COORD":[0,-0.05]}`))
	assert.ErrorIs(t, err, polar.ErrDataFormat)
}
