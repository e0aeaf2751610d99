// SPDX-License-Identifier: MIT

package propeller

import (
	"fmt"

	"github.com/katalvlaran/propel/acoustics"
)

// SolveAcoustics computes the tonal far-field pressure harmonics of the
// trimmed rotor for an observer at distance metres and elevation degrees
// from the axis. The mesh is rebuilt between rootCut·R and the tip-loss
// radius with sectional coefficients only. Any error clears the stored
// harmonics so SoundPressureLevel reports 0.
func (p *Propeller) SolveAcoustics(distance, elevation, rootCut float64) ([]complex128, error) {
	p.pressures, p.bladePassage = nil, 0
	if p.state != StateTrimmed {
		return nil, fmt.Errorf("%s is %v: %w", p.name, p.state, ErrNotTrimmed)
	}
	op, err := p.operating(rootCut)
	if err != nil {
		return nil, err
	}

	var cells []acoustics.Cell
	perf, err := p.integrate(op, p.ctrl.Pitch, p.ctrl.RPM, false, func(c *cell) {
		cells = append(cells, acoustics.Cell{
			R:        c.R,
			Span:     c.Span,
			Chord:    c.Props.Chord,
			Sweep:    c.Props.Sweep,
			Offset:   c.Props.Offset,
			Velocity: c.Speed,
			CL:       c.Lift,
			CD:       c.Drag,
		})
	})
	if err != nil {
		return nil, err
	}
	_, nPsi := p.blade.Mesh()
	field := acoustics.Field{
		Blades:         p.blade.Blades(),
		Omega:          p.ctrl.RPM,
		Radius:         p.blade.Radius(),
		InflowVelocity: perf.Inflow.Velocity,
		Azimuthal:      nPsi,
		Density:        op.env.Density,
		SpeedOfSound:   op.env.SpeedOfSound,
		Cells:          cells,
	}
	var opts []acoustics.Option
	if s := p.opts.sink; s != nil {
		s.ResetAcoustic()
		opts = append(opts, acoustics.WithSink(s))
	}
	pressures, err := acoustics.Harmonics(field, acoustics.Observer{Distance: distance, Elevation: elevation}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	p.pressures, p.bladePassage = pressures, field.BladePassage()

	return append([]complex128(nil), pressures...), nil
}

// SoundPressureLevel returns the overall level in dB of the last
// SolveAcoustics, or 0 when there is none.
func (p *Propeller) SoundPressureLevel() float64 {
	if len(p.pressures) == 0 {
		return 0
	}

	return acoustics.SPL(p.pressures, p.bladePassage)
}
