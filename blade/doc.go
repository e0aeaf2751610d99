// Package blade describes a propeller blade as an ordered list of radial
// sections and answers piecewise-linear lookups along the span.
//
// 🚀 Sections
//
//	Each Section sits at a normalised radial location r/R in [0, 1] and
//	carries chord, twist, sweep and face offset plus the name of the
//	airfoil whose polar lives in a polar.Store. Locations are strictly
//	increasing: root at index 0, tip at the last index.
//
// ✨ Lookups
//   - Index(r): largest section index whose location is <= r,
//     clamped so that [i, i+1] always brackets the query
//   - At(r):    chord, twist, sweep, offset linearly interpolated between
//     the bracketing sections; airfoil of the lower one
//   - Aero(r, alpha, re, mach, multiplier): sectional CL/CD through the
//     shared polar store
//
// ⚙️ Usage:
//
//	b, err := blade.New(0.5, sections,
//		blade.WithBlades(2),
//		blade.WithMesh(250, 1),
//		blade.WithPolars(store),
//	)
//	p := b.At(0.75)
//
// A Blade is immutable after New and safe for concurrent readers.
package blade
