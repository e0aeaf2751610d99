// SPDX-License-Identifier: MIT

package acoustics

const (
	// DefaultHarmonics is the number of blade-passage harmonics summed.
	DefaultHarmonics = 50
	// ReferencePressure is the SPL reference in Pa.
	ReferencePressure = 2e-5
	// MinAudible and MaxAudible bound the frequencies counted by SPL (Hz).
	MinAudible = 20.0
	MaxAudible = 20000.0
)

const panicHarmonicsInvalid = "acoustics: WithHarmonics: need n >= 1"

// Sink receives per-cell pressure contributions, harmonic-major then
// azimuth-major then radius, already scaled by F_m·B/Nψ.
type Sink interface {
	AddAcoustic(p complex128)
}

// Option configures Harmonics.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	harmonics int
	sink      Sink
}

// WithHarmonics sets the number of harmonics.
func WithHarmonics(n int) Option {
	if n < 1 {
		panic(panicHarmonicsInvalid)
	}

	return func(o *Options) { o.harmonics = n }
}

// WithSink streams every cell contribution to s.
func WithSink(s Sink) Option {
	return func(o *Options) { o.sink = s }
}

func gatherOptions(user ...Option) Options {
	o := Options{harmonics: DefaultHarmonics}
	for _, set := range user {
		set(&o)
	}

	return o
}
