// SPDX-License-Identifier: MIT

package blade

import "github.com/katalvlaran/propel/polar"

const (
	// DefaultRadialNodes is the number of radial mesh stations.
	DefaultRadialNodes = 250
	// DefaultAzimuthalNodes is the number of azimuthal mesh stations.
	DefaultAzimuthalNodes = 1
	// DefaultBlades is the blade count.
	DefaultBlades = 2
)

const (
	panicMeshInvalid   = "blade: WithMesh: need radial >= 2 and azimuthal >= 1"
	panicBladesInvalid = "blade: WithBlades: count must be >= 1"
)

// Option configures a Blade.
type Option func(*Options)

// Options is the resolved blade configuration.
type Options struct {
	radial    int
	azimuthal int
	blades    int
	polars    *polar.Store
}

// WithMesh sets the radial and azimuthal node counts of the BEMT mesh.
func WithMesh(radial, azimuthal int) Option {
	if radial < 2 || azimuthal < 1 {
		panic(panicMeshInvalid)
	}

	return func(o *Options) { o.radial, o.azimuthal = radial, azimuthal }
}

// WithBlades sets the number of blades.
func WithBlades(n int) Option {
	if n < 1 {
		panic(panicBladesInvalid)
	}

	return func(o *Options) { o.blades = n }
}

// WithPolars attaches the store that resolves section airfoils. Every
// airfoil named by a section must then be built in it.
func WithPolars(s *polar.Store) Option {
	return func(o *Options) { o.polars = s }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		radial:    DefaultRadialNodes,
		azimuthal: DefaultAzimuthalNodes,
		blades:    DefaultBlades,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
