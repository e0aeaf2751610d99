// SPDX-License-Identifier: MIT

package acoustics

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Cell is one radial/azimuthal mesh element of the trimmed field.
type Cell struct {
	R        float64 // radial station, m
	Span     float64 // radial width, m
	Chord    float64 // m
	Sweep    float64 // mid-chord alignment, m
	Offset   float64 // face offset, m
	Velocity float64 // sectional speed, m/s
	CL, CD   float64 // sectional coefficients
}

// Field is the trimmed rotor state the harmonics are computed from.
type Field struct {
	Blades         int
	Omega          float64 // rad/s
	Radius         float64 // tip radius, m
	InflowVelocity float64 // m/s
	Azimuthal      int     // azimuthal mesh stations, Nψ
	Density        float64 // ρ0, kg/m³
	SpeedOfSound   float64 // c0, m/s
	Cells          []Cell
}

// BladePassage returns the blade-passage frequency B·Ω/2π in Hz.
func (f Field) BladePassage() float64 {
	return float64(f.Blades) * f.Omega / (2 * math.Pi)
}

// Observer places the listener at Distance metres and Elevation degrees
// from the rotor axis.
type Observer struct {
	Distance  float64 `json:"distance" yaml:"distance"`
	Elevation float64 `json:"elevation" yaml:"elevation"`
}

func (f Field) validate() error {
	switch {
	case f.Blades < 1, f.Azimuthal < 1:
		return fmt.Errorf("blades %d, azimuthal %d: %w", f.Blades, f.Azimuthal, ErrBadField)
	case !(f.Omega > 0), !(f.Radius > 0), !(f.Density > 0), !(f.SpeedOfSound > 0):
		return fmt.Errorf("omega %g, radius %g, density %g, c0 %g: %w", f.Omega, f.Radius, f.Density, f.SpeedOfSound, ErrBadField)
	case len(f.Cells) == 0:
		return fmt.Errorf("no cells: %w", ErrBadField)
	case math.Abs(f.InflowVelocity) >= f.SpeedOfSound:
		return fmt.Errorf("inflow %g m/s: %w", f.InflowVelocity, ErrBadField)
	}
	for i, c := range f.Cells {
		if !(c.R > 0) || !(c.Chord > 0) || !(c.Velocity > 0) {
			return fmt.Errorf("cell %d: %w", i, ErrBadCell)
		}
	}

	return nil
}

// Harmonics returns the complex far-field pressure of harmonics 1..n.
//
// Implementation:
//   - Stage 1: Validate field and observer.
//   - Stage 2: Per harmonic, evaluate the forward-flight factor once and
//     sum the sectional kernel over all cells.
//   - Stage 3: Scale by B/Nψ; stream scaled cell terms to the sink.
//
// Complexity:
//   - O(n·len(Cells)) Bessel evaluations.
func Harmonics(f Field, obs Observer, opts ...Option) ([]complex128, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	if !(obs.Distance > 0) || math.IsInf(obs.Distance, 0) || math.IsNaN(obs.Elevation) {
		return nil, fmt.Errorf("distance %g: %w", obs.Distance, ErrBadObserver)
	}
	o := gatherOptions(opts...)

	theta := obs.Elevation * math.Pi / 180
	sinT, cosT := math.Sin(theta), math.Cos(theta)
	mx := f.InflowVelocity / f.SpeedOfSound
	doppler := 1 - mx*cosT
	scale := complex(float64(f.Blades)/float64(f.Azimuthal), 0)

	out := make([]complex128, o.harmonics)
	for m := 1; m <= o.harmonics; m++ {
		ff := forwardFactor(f, obs.Distance, m, sinT, doppler)
		var total complex128
		for _, c := range f.Cells {
			term := sectional(f, c, m, sinT, cosT, mx, doppler)
			total += term
			if o.sink != nil {
				o.sink.AddAcoustic(ff * term * scale)
			}
		}
		out[m-1] = ff * total * scale
	}

	return out, nil
}

// forwardFactor is the retarded-time and Doppler factor of harmonic m.
func forwardFactor(f Field, y float64, m int, sinT, doppler float64) complex128 {
	mB := float64(m * f.Blades)
	c0 := f.SpeedOfSound
	amp := -f.Density * c0 * c0 * float64(f.Blades) * sinT / (8 * math.Pi * (y / (2 * f.Radius)) * doppler)

	return complex(amp, 0) * cmplx.Exp(complex(0, mB*(f.Omega*y/c0-math.Pi/2)))
}

// sectional is the unscaled kernel of one cell for harmonic m.
func sectional(f Field, c Cell, m int, sinT, cosT, mx, doppler float64) complex128 {
	mB := float64(m * f.Blades)
	c0 := f.SpeedOfSound
	mr := c.Velocity / c0

	kx := mB * c.Chord * f.Omega / (c0 * mr * doppler)
	ky := -(mB * c.Chord / (c.R * mr)) * (mr*mr*cosT - mx) / doppler
	phiS := kx * c.Sweep / c.Chord
	phi0 := -ky * c.Offset / c.Chord

	j := math.Jn(m*f.Blades, mB*(f.Omega*c.R/c0)*sinT/doppler)
	psi := sinc(kx / 2)

	load := complex(0, kx*math.Abs(c.CD)/2*psi+ky*math.Abs(c.CL)/2*psi)

	return complex(mr*mr*j*c.Span/f.Radius, 0) * cmplx.Exp(complex(0, phi0+phiS)) * load
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	return math.Sin(x) / x
}

// SPL returns the overall sound pressure level in dB of harmonics whose
// frequency m·bladePassage lies inside the audible band.
func SPL(pressures []complex128, bladePassage float64) float64 {
	var sum float64
	for i, p := range pressures {
		freq := float64(i+1) * bladePassage
		if freq > MinAudible && freq < MaxAudible {
			sum += 2 * (real(p)*real(p) + imag(p)*imag(p))
		}
	}
	rms := math.Sqrt(sum)
	if rms == 0 {
		return 0
	}

	return math.Max(0, 20*math.Log10(rms/ReferencePressure))
}

// Combine returns the level of incoherent sources given in dB, the
// energetic sum 10·log10 Σ 10^(L/10). Zero-level entries are skipped.
func Combine(levels ...float64) float64 {
	var sum float64
	for _, l := range levels {
		if l > 0 {
			sum += math.Pow(10, l/10)
		}
	}
	if sum == 0 {
		return 0
	}

	return 10 * math.Log10(sum)
}
