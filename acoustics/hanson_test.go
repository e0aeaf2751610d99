package acoustics_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/propel/acoustics"
)

type recorder struct{ points []complex128 }

func (r *recorder) AddAcoustic(p complex128) { r.points = append(r.points, p) }

func field() acoustics.Field {
	f := acoustics.Field{
		Blades:         2,
		Omega:          150,
		Radius:         0.5,
		InflowVelocity: 8,
		Azimuthal:      1,
		Density:        1.225,
		SpeedOfSound:   340.3,
	}
	for i := 0; i < 20; i++ {
		r := 0.05 + 0.0225*float64(i)
		f.Cells = append(f.Cells, acoustics.Cell{
			R: r, Span: 0.0225, Chord: 0.05, Sweep: 0.002, Offset: 0.001,
			Velocity: math.Hypot(150*r, 8), CL: 0.6, CD: 0.02,
		})
	}

	return f
}

// TestHarmonics_SinkMatchesTotals verifies the streamed cell terms add up
// to each harmonic.
func TestHarmonics_SinkMatchesTotals(t *testing.T) {
	f := field()
	rec := &recorder{}
	p, err := acoustics.Harmonics(f, acoustics.Observer{Distance: 10, Elevation: 80}, acoustics.WithSink(rec), acoustics.WithHarmonics(5))
	require.NoError(t, err)
	require.Len(t, p, 5)
	require.Len(t, rec.points, 5*len(f.Cells))

	for m := 0; m < 5; m++ {
		var sum complex128
		for _, q := range rec.points[m*len(f.Cells) : (m+1)*len(f.Cells)] {
			sum += q
		}
		assert.InDelta(t, 0, cmplx.Abs(sum-p[m]), 1e-9*math.Max(1, cmplx.Abs(p[m])), "harmonic %d", m+1)
	}
	assert.NotZero(t, cmplx.Abs(p[0]))
	assert.Greater(t, acoustics.SPL(p, f.BladePassage()), 0.0)
}

// TestHarmonics_OnAxis verifies an observer on the rotor axis hears nothing.
func TestHarmonics_OnAxis(t *testing.T) {
	p, err := acoustics.Harmonics(field(), acoustics.Observer{Distance: 10, Elevation: 0})
	require.NoError(t, err)
	assert.Len(t, p, acoustics.DefaultHarmonics)
	for _, x := range p {
		assert.Zero(t, cmplx.Abs(x))
	}
	assert.Equal(t, 0.0, acoustics.SPL(p, field().BladePassage()))
}

// TestHarmonics_Distance verifies the far-field 1/y decay.
func TestHarmonics_Distance(t *testing.T) {
	near, err := acoustics.Harmonics(field(), acoustics.Observer{Distance: 10, Elevation: 90})
	require.NoError(t, err)
	far, err := acoustics.Harmonics(field(), acoustics.Observer{Distance: 20, Elevation: 90})
	require.NoError(t, err)
	assert.InDelta(t, 2, cmplx.Abs(near[0])/cmplx.Abs(far[0]), 1e-9)

	bpf := field().BladePassage()
	assert.InDelta(t, 20*math.Log10(2), acoustics.SPL(near, bpf)-acoustics.SPL(far, bpf), 1e-6)
}

// TestHarmonics_Validation verifies field and observer checks.
func TestHarmonics_Validation(t *testing.T) {
	obs := acoustics.Observer{Distance: 10, Elevation: 90}

	f := field()
	f.Cells = nil
	_, err := acoustics.Harmonics(f, obs)
	assert.ErrorIs(t, err, acoustics.ErrBadField)

	f = field()
	f.Omega = 0
	_, err = acoustics.Harmonics(f, obs)
	assert.ErrorIs(t, err, acoustics.ErrBadField)

	f = field()
	f.InflowVelocity = 400
	_, err = acoustics.Harmonics(f, obs)
	assert.ErrorIs(t, err, acoustics.ErrBadField)

	f = field()
	f.Cells[3].Velocity = 0
	_, err = acoustics.Harmonics(f, obs)
	assert.ErrorIs(t, err, acoustics.ErrBadCell)

	_, err = acoustics.Harmonics(field(), acoustics.Observer{Distance: 0})
	assert.ErrorIs(t, err, acoustics.ErrBadObserver)

	assert.Panics(t, func() { acoustics.WithHarmonics(0) })
}

// TestSPL verifies the reference level, the audible band and the floor.
func TestSPL(t *testing.T) {
	assert.Equal(t, 0.0, acoustics.SPL(nil, 100))
	assert.Equal(t, 0.0, acoustics.SPL([]complex128{0, 0}, 100))

	want := 20 * math.Log10(math.Sqrt2/acoustics.ReferencePressure)
	assert.InDelta(t, want, acoustics.SPL([]complex128{complex(1, 0)}, 100), 1e-9)
	assert.InDelta(t, want, acoustics.SPL([]complex128{complex(0, 1)}, 100), 1e-9)

	// 10 Hz and 30 kHz fall outside the band.
	assert.Equal(t, 0.0, acoustics.SPL([]complex128{1}, 10))
	assert.Equal(t, 0.0, acoustics.SPL([]complex128{1}, 30000))
	assert.InDelta(t, want, acoustics.SPL([]complex128{1, 1}, 15), 1e-9)

	assert.Equal(t, 0.0, acoustics.SPL([]complex128{1e-7}, 100))
}

// TestCombine verifies the energetic sum of incoherent levels.
func TestCombine(t *testing.T) {
	assert.InDelta(t, 60+10*math.Log10(2), acoustics.Combine(60, 60), 1e-12)
	assert.InDelta(t, 70, acoustics.Combine(70, 0), 1e-12)
	assert.Equal(t, 0.0, acoustics.Combine())
}
