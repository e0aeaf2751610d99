// SPDX-License-Identifier: MIT

package blade

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/propel/polar"
)

// Section is one radial station of the blade. Location is r/R; Chord,
// Sweep and Offset are in metres, Twist in degrees.
type Section struct {
	Location float64 `json:"location" yaml:"location"`
	Airfoil  string  `json:"airfoil" yaml:"airfoil"`
	Chord    float64 `json:"chord" yaml:"chord"`
	Twist    float64 `json:"twist" yaml:"twist"`
	Sweep    float64 `json:"sweep" yaml:"sweep"`
	Offset   float64 `json:"offset" yaml:"offset"`
}

// Properties are the interpolated section values at a radial location.
type Properties struct {
	Airfoil string
	Chord   float64
	Twist   float64
	Sweep   float64
	Offset  float64
}

// Blade is an immutable, validated section list.
type Blade struct {
	sections  []Section
	radius    float64
	blades    int
	radial    int
	azimuthal int
	polars    *polar.Store
}

// New validates sections and returns a blade of the given radius (metres).
func New(radius float64, sections []Section, opts ...Option) (*Blade, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, ErrBadRadius
	}
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	for i, s := range sections {
		if s.Location < 0 || s.Location > 1 {
			return nil, fmt.Errorf("section %d at %g: %w", i, s.Location, ErrLocationRange)
		}
		if i > 0 && s.Location <= sections[i-1].Location {
			return nil, fmt.Errorf("section %d at %g after %g: %w", i, s.Location, sections[i-1].Location, ErrUnsortedSections)
		}
		if s.Airfoil == "" || !(s.Chord > 0) || !finite(s.Chord, s.Twist, s.Sweep, s.Offset) {
			return nil, fmt.Errorf("section %d: %w", i, ErrBadSection)
		}
	}
	o := gatherOptions(opts...)
	b := &Blade{
		sections:  append([]Section(nil), sections...),
		radius:    radius,
		blades:    o.blades,
		radial:    o.radial,
		azimuthal: o.azimuthal,
		polars:    o.polars,
	}
	if b.polars != nil {
		for _, name := range b.Airfoils() {
			af, ok := b.polars.Airfoil(name)
			if !ok {
				return nil, fmt.Errorf("blade airfoil %s: %w", name, polar.ErrUnknownAirfoil)
			}
			if !af.SurrogateBuilt {
				return nil, fmt.Errorf("blade airfoil %s: %w", name, polar.ErrNotBuilt)
			}
		}
	}

	return b, nil
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

// Radius returns the tip radius in metres.
func (b *Blade) Radius() float64 { return b.radius }

// Blades returns the blade count.
func (b *Blade) Blades() int { return b.blades }

// Mesh returns the radial and azimuthal node counts.
func (b *Blade) Mesh() (radial, azimuthal int) { return b.radial, b.azimuthal }

// Polars returns the attached store, or nil.
func (b *Blade) Polars() *polar.Store { return b.polars }

// Len returns the number of sections.
func (b *Blade) Len() int { return len(b.sections) }

// Sections returns a copy of the section list.
func (b *Blade) Sections() []Section { return append([]Section(nil), b.sections...) }

// Airfoils returns the distinct airfoil names in root-to-tip order.
func (b *Blade) Airfoils() []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range b.sections {
		if !seen[s.Airfoil] {
			seen[s.Airfoil] = true
			out = append(out, s.Airfoil)
		}
	}

	return out
}

// Index returns the largest section index whose location is <= r, clamped
// to [0, Len()-2] (0 for single-section blades).
func (b *Blade) Index(r float64) int {
	n := len(b.sections)
	if n == 1 {
		return 0
	}
	i := sort.Search(n, func(k int) bool { return b.sections[k].Location > r }) - 1
	if i < 0 {
		return 0
	}
	if i > n-2 {
		return n - 2
	}

	return i
}

// At interpolates the section properties at normalised location r. Queries
// outside the section range take the nearest end value.
func (b *Blade) At(r float64) Properties {
	i := b.Index(r)
	lo := b.sections[i]
	if len(b.sections) == 1 {
		return props(lo, lo, 0)
	}
	hi := b.sections[i+1]
	t := (r - lo.Location) / (hi.Location - lo.Location)
	t = math.Max(0, math.Min(1, t))

	return props(lo, hi, t)
}

func props(lo, hi Section, t float64) Properties {
	lerp := func(a, b float64) float64 { return a + (b-a)*t }

	return Properties{
		Airfoil: lo.Airfoil,
		Chord:   lerp(lo.Chord, hi.Chord),
		Twist:   lerp(lo.Twist, hi.Twist),
		Sweep:   lerp(lo.Sweep, hi.Sweep),
		Offset:  lerp(lo.Offset, hi.Offset),
	}
}

// Aero returns the sectional (CL, CD) at r, scaled by multiplier, from the
// attached polar store.
func (b *Blade) Aero(r, alpha, re, mach, multiplier float64) (cl, cd float64, err error) {
	if b.polars == nil {
		return 0, 0, ErrNoPolars
	}

	return b.polars.AeroValues(b.At(r).Airfoil, alpha, re, mach, multiplier)
}

// MaxThickness returns the thickness ratio of the airfoil at r.
func (b *Blade) MaxThickness(r float64) (float64, error) {
	if b.polars == nil {
		return 0, ErrNoPolars
	}

	return b.polars.MaxThickness(b.At(r).Airfoil)
}

// Coordinates returns the surface coordinates of the airfoil at r.
func (b *Blade) Coordinates(r float64) (polar.Coordinates, error) {
	if b.polars == nil {
		return polar.Coordinates{}, ErrNoPolars
	}

	return b.polars.Coordinates(b.At(r).Airfoil)
}
