package blade_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/propel/blade"
	"github.com/katalvlaran/propel/polar"
	"github.com/katalvlaran/propel/polar/polartest"
)

func sections() []blade.Section {
	return []blade.Section{
		{Location: 0.0, Airfoil: "root", Chord: 0.10, Twist: 30, Sweep: 0, Offset: 0},
		{Location: 0.5, Airfoil: "mid", Chord: 0.08, Twist: 15, Sweep: 0.01, Offset: 0.002},
		{Location: 1.0, Airfoil: "tip", Chord: 0.04, Twist: 5, Sweep: 0.03, Offset: 0.004},
	}
}

// TestNew_Validation verifies the section invariants.
func TestNew_Validation(t *testing.T) {
	_, err := blade.New(1, nil)
	assert.ErrorIs(t, err, blade.ErrNoSections)

	_, err = blade.New(0, sections())
	assert.ErrorIs(t, err, blade.ErrBadRadius)

	s := sections()
	s[1].Location = 0
	_, err = blade.New(1, s)
	assert.ErrorIs(t, err, blade.ErrUnsortedSections)

	s = sections()
	s[2].Location = 1.2
	_, err = blade.New(1, s)
	assert.ErrorIs(t, err, blade.ErrLocationRange)

	s = sections()
	s[0].Chord = 0
	_, err = blade.New(1, s)
	assert.ErrorIs(t, err, blade.ErrBadSection)

	b, err := blade.New(0.5, sections())
	require.NoError(t, err)
	assert.Equal(t, 0.5, b.Radius())
	assert.Equal(t, blade.DefaultBlades, b.Blades())
	nr, na := b.Mesh()
	assert.Equal(t, 250, nr)
	assert.Equal(t, 1, na)
	assert.Equal(t, []string{"root", "mid", "tip"}, b.Airfoils())
}

// TestIndex verifies the bracketing rule at and between stations.
func TestIndex(t *testing.T) {
	b, err := blade.New(1, sections())
	require.NoError(t, err)
	for _, tc := range []struct {
		r    float64
		want int
	}{
		{-0.1, 0}, {0, 0}, {0.25, 0}, {0.5, 1}, {0.75, 1}, {1, 1}, {1.5, 1},
	} {
		assert.Equal(t, tc.want, b.Index(tc.r), "r=%v", tc.r)
	}
}

// TestAt_Interpolation verifies linear interpolation and the lower airfoil.
func TestAt_Interpolation(t *testing.T) {
	b, err := blade.New(1, sections())
	require.NoError(t, err)

	p := b.At(0.25)
	assert.Equal(t, "root", p.Airfoil)
	assert.InDelta(t, 0.09, p.Chord, 1e-12)
	assert.InDelta(t, 22.5, p.Twist, 1e-12)
	assert.InDelta(t, 0.005, p.Sweep, 1e-12)
	assert.InDelta(t, 0.001, p.Offset, 1e-12)

	p = b.At(0.75)
	assert.Equal(t, "mid", p.Airfoil)
	assert.InDelta(t, 0.06, p.Chord, 1e-12)
	assert.InDelta(t, 10.0, p.Twist, 1e-12)

	assert.InDelta(t, 0.04, b.At(2).Chord, 1e-12, "clamped at the tip")
	assert.InDelta(t, 0.10, b.At(-1).Chord, 1e-12, "clamped at the root")

	one, err := blade.New(1, sections()[:1])
	require.NoError(t, err)
	assert.Equal(t, 30.0, one.At(0.7).Twist)
}

// TestPolars verifies store-backed lookups and their failure modes.
func TestPolars(t *testing.T) {
	b, err := blade.New(1, sections())
	require.NoError(t, err)
	_, _, err = b.Aero(0.5, 2, 2e5, 0, 1)
	assert.ErrorIs(t, err, blade.ErrNoPolars)

	store, err := polartest.Store("thin", polartest.Default())
	require.NoError(t, err)
	_, err = blade.New(1, sections(), blade.WithPolars(store))
	assert.ErrorIs(t, err, polar.ErrUnknownAirfoil)

	uniform := []blade.Section{
		{Location: 0, Airfoil: "thin", Chord: 0.1, Twist: 10},
		{Location: 1, Airfoil: "thin", Chord: 0.1, Twist: 0},
	}
	b, err = blade.New(1, uniform, blade.WithPolars(store), blade.WithMesh(50, 4), blade.WithBlades(3))
	require.NoError(t, err)
	assert.Equal(t, 3, b.Blades())

	cl, _, err := b.Aero(0.5, 4, 2e5, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, polartest.Default().Lift(4), cl, 1e-3)

	_, err = b.MaxThickness(0.5)
	assert.ErrorIs(t, err, polar.ErrNoCoordinates)
	_, err = b.Coordinates(0.5)
	assert.ErrorIs(t, err, polar.ErrNoCoordinates)
}

// TestDecodeSections verifies lenient numbers and required keys.
func TestDecodeSections(t *testing.T) {
	s, err := blade.DecodeSections(strings.NewReader(`[
		{"location": 0, "airfoil": "a", "chord": "0.1", "twist": 20},
		{"location": "1", "airfoil": "a", "chord": 0.05, "twist": "5", "sweep": 0.02}
	]`))
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, 0.1, s[0].Chord)
	assert.Equal(t, 1.0, s[1].Location)
	assert.Equal(t, 5.0, s[1].Twist)
	assert.Equal(t, 0.02, s[1].Sweep)
	assert.Equal(t, 0.0, s[0].Offset)

	_, err = blade.DecodeSections(strings.NewReader(`[{"location": 0, "airfoil": "a", "twist": 1}]`))
	assert.ErrorIs(t, err, blade.ErrBadSection)
	_, err = blade.DecodeSections(strings.NewReader(`[{"location": "x", "airfoil": "a", "chord": 1, "twist": 1}]`))
	assert.ErrorIs(t, err, blade.ErrBadSection)
}
