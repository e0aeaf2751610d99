package polar_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/polar"
	"github.com/katalvlaran/propel/polar/polartest"
	"github.com/katalvlaran/propel/surrogate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuild_Bounds verifies the recorded envelope matches the table.
func TestBuild_Bounds(t *testing.T) {
	tbl := polartest.Default()
	s, err := polartest.Store("thin", tbl)
	require.NoError(t, err)

	af, ok := s.Airfoil("thin")
	require.True(t, ok)
	assert.True(t, af.SurrogateBuilt)
	assert.Equal(t, polar.Layout{NAlpha: 41, NRe: 3, NMach: 1}, af.Layout)
	assert.Equal(t, -20.0, af.Bounds.AlphaMin)
	assert.Equal(t, 20.0, af.Bounds.AlphaMax)
	assert.Equal(t, 5e4, af.Bounds.ReMin)
	assert.Equal(t, 1e6, af.Bounds.ReMax)
	assert.InDelta(t, tbl.Lift(12), af.Bounds.CLMax, 1e-12)
	assert.Equal(t, []float64{5e4, 2e5, 1e6}, af.UniqueRe)
	assert.Equal(t, 0, af.Fallbacks)
	assert.Same(t, af.CL().Inputs(), af.CD().Inputs(), "CD must share CL inputs")
}

// TestBuild_Idempotent verifies re-building a built airfoil is a no-op.
func TestBuild_Idempotent(t *testing.T) {
	s := polar.NewStore()
	require.NoError(t, s.Build("thin", polartest.Default().Build()))
	require.NoError(t, s.Build("thin", polar.TrainingData{}), "second build must not touch the entry")
	af, _ := s.Airfoil("thin")
	assert.True(t, af.SurrogateBuilt)
}

// TestBuild_Malformed verifies a failed build leaves SurrogateBuilt false.
func TestBuild_Malformed(t *testing.T) {
	s := polar.NewStore()
	td := polartest.Default().Build()
	td.CD = td.CD[:10]
	err := s.Build("thin", td)
	assert.ErrorIs(t, err, polar.ErrDataFormat)
	af, ok := s.Airfoil("thin")
	require.True(t, ok)
	assert.False(t, af.SurrogateBuilt)

	_, _, err = s.AeroValues("thin", 2, 2e5, 0, 1)
	assert.ErrorIs(t, err, polar.ErrNotBuilt)
	_, _, err = s.AeroValues("clarky", 2, 2e5, 0, 1)
	assert.ErrorIs(t, err, polar.ErrUnknownAirfoil)
}

// TestBuild_CapacityExceeded verifies an oversized table fails at ingestion.
func TestBuild_CapacityExceeded(t *testing.T) {
	s := polar.NewStore(polar.WithCapacity(100, 10))
	err := s.Build("thin", polartest.Default().Build())
	assert.ErrorIs(t, err, surrogate.ErrCapacityExceeded)
}

// TestStallAngles verifies the outward search from mid-alpha.
func TestStallAngles(t *testing.T) {
	s, err := polartest.Store("thin", polartest.Default())
	require.NoError(t, err)

	pos, neg, err := s.StallAngles("thin", 2e5, 0)
	require.NoError(t, err)
	assert.InDelta(t, 13.0, pos, 1e-9, "first angle past the lift peak")
	assert.InDelta(t, -13.0, neg, 1e-9)

	ld, err := s.MaxLDAngle("thin", 2e5, 0)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, ld, 1e-9, "first angle past the CL/CD peak")
}

// TestStallAngles_Fallback verifies a monotonic curve falls back to the boundary and is counted.
func TestStallAngles_Fallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	tbl := polartest.Default()
	tbl.StallAlpha = 0
	s, err := polartest.Store("flat", tbl, polar.WithMetrics(m))
	require.NoError(t, err)

	pos, neg, err := s.StallAngles("flat", 2e5, 0)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, pos, 1e-9)
	assert.InDelta(t, -20.0, neg, 1e-9)

	af, _ := s.Airfoil("flat")
	assert.Equal(t, 6, af.Fallbacks)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StallFallbacks.WithLabelValues(metrics.TablePositiveStall)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StallFallbacks.WithLabelValues(metrics.TableNegativeStall)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StallFallbacks.WithLabelValues(metrics.TableMaxLD)))
}

// TestAeroValues_WithinBounds verifies interpolated CL/CD stay inside the recorded envelope.
func TestAeroValues_WithinBounds(t *testing.T) {
	s, err := polartest.Store("thin", polartest.Default())
	require.NoError(t, err)
	af, _ := s.Airfoil("thin")
	b := af.Bounds

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 300; i++ {
		alpha := b.AlphaMin + (b.AlphaMax-b.AlphaMin)*(0.01+0.98*rng.Float64())
		re := b.ReMin + (b.ReMax-b.ReMin)*(0.01+0.98*rng.Float64())
		cl, cd, err := s.AeroValues("thin", alpha, re, 0, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cl, b.CLMin)
		assert.LessOrEqual(t, cl, b.CLMax)
		assert.GreaterOrEqual(t, cd, b.CDMin)
		assert.LessOrEqual(t, cd, b.CDMax)
	}
}

// TestAeroValues_ExactAndMultiplier verifies a training point and the force multiplier.
func TestAeroValues_ExactAndMultiplier(t *testing.T) {
	tbl := polartest.Default()
	s, err := polartest.Store("thin", tbl)
	require.NoError(t, err)

	cl, cd, err := s.AeroValues("thin", 4, 2e5, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, tbl.Lift(4), cl)
	assert.Equal(t, tbl.Drag(4), cd)

	l, d, err := s.AeroValues("thin", 4, 2e5, 0, 10)
	require.NoError(t, err)
	assert.InDelta(t, 10*cl, l, 1e-12)
	assert.InDelta(t, 10*cd, d, 1e-12)
}

// TestAeroValues_RangePolicy verifies Abort and Clamp behaviour.
func TestAeroValues_RangePolicy(t *testing.T) {
	tbl := polartest.Default()

	abort, err := polartest.Store("thin", tbl, polar.WithRangePolicy(polar.Abort))
	require.NoError(t, err)
	_, _, err = abort.AeroValues("thin", 25, 2e5, 0, 1)
	assert.ErrorIs(t, err, polar.ErrDataOutOfRange)
	assert.ErrorIs(t, abort.InRange("thin", 4, 1e7), polar.ErrDataOutOfRange)
	assert.NoError(t, abort.InRange("thin", 4, 2e5))
	assert.EqualError(t, abort.InRange("thin", 4, 1e7),
		"thin: alpha 4 in [-20, 20], Re 1e+07 in [50000, 1e+06]: "+polar.ErrDataOutOfRange.Error())

	cl0, _, err := abort.AeroValues("thin", 0, 2e5, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cl0, "a stored alpha of 0 is returned exactly")

	m, err := metrics.New(nil)
	require.NoError(t, err)
	clamp, err := polartest.Store("thin", tbl, polar.WithMetrics(m))
	require.NoError(t, err)
	cl, _, err := clamp.AeroValues("thin", 25, 2e5, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, tbl.Lift(20), cl, "alpha clamped onto the table edge")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutOfRange))
}

// TestFreeze verifies the build barrier.
func TestFreeze(t *testing.T) {
	s, err := polartest.Store("thin", polartest.Default())
	require.NoError(t, err)
	assert.True(t, s.Frozen())
	assert.ErrorIs(t, s.Build("other", polartest.Default().Build()), polar.ErrFrozen)
	assert.ErrorIs(t, s.AttachCoordinates("thin", polar.Coordinates{}), polar.ErrFrozen)
	assert.ErrorIs(t, s.Register("other"), polar.ErrFrozen)
	assert.Equal(t, []string{"thin"}, s.Names())
}

// TestCoordinates verifies geometry getters and their failure modes.
func TestCoordinates(t *testing.T) {
	s := polar.NewStore()
	require.NoError(t, s.Register("thin"))
	_, err := s.MaxThickness("thin")
	assert.ErrorIs(t, err, polar.ErrNoCoordinates)
	_, err = s.Coordinates("thin")
	assert.ErrorIs(t, err, polar.ErrNoCoordinates)
	_, err = s.Coordinates("nope")
	assert.ErrorIs(t, err, polar.ErrUnknownAirfoil)

	require.NoError(t, s.AttachCoordinates("thin", polar.Coordinates{
		UpperX: []float64{-0.5, 0.5}, UpperY: []float64{0, 0},
		LowerX: []float64{-0.5, 0.5}, LowerY: []float64{0, 0},
		MaxThickness: 0.12,
	}))
	mt, err := s.MaxThickness("thin")
	require.NoError(t, err)
	assert.Equal(t, 0.12, mt)
}

// TestBuild_Mach verifies 3-D surrogates over (alpha, mach, Re).
func TestBuild_Mach(t *testing.T) {
	tbl := polartest.Default()
	lo := tbl.Build()
	hi := tbl.Build()
	for i := range hi.Mach {
		lo.Mach[i] = 0.1
		hi.Mach[i] = 0.5
		hi.CL[i] *= 1.1
	}
	td := polar.TrainingData{
		CL:    append(lo.CL, hi.CL...),
		CD:    append(lo.CD, hi.CD...),
		Re:    append(lo.Re, hi.Re...),
		Alpha: append(lo.Alpha, hi.Alpha...),
		Mach:  append(lo.Mach, hi.Mach...),
	}
	s := polar.NewStore(polar.WithMach(true))
	require.NoError(t, s.Build("thin", td))
	af, _ := s.Airfoil("thin")
	assert.Equal(t, 2, af.Layout.NMach)
	assert.Equal(t, []float64{0.1, 0.5}, af.UniqueMach)
	assert.Equal(t, 3, af.CL().Dim())

	cl, _, err := s.AeroValues("thin", 4, 2e5, 0.5, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.1*tbl.Lift(4), cl, 1e-12)
	assert.False(t, math.IsNaN(cl))
}
