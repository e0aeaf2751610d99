// Package polar is the airfoil polar store: per-airfoil surrogate models of
// lift and drag plus derived stall and max-L/D tables.
//
// 🚀 What does it hold?
//
//	For every airfoil name, five k-nearest-neighbour interpolators built
//	from an externally generated polar table:
//	  • CL(alpha, Re[, mach])
//	  • CD(alpha, Re[, mach])          (shares CL's input matrix)
//	  • positive stall angle(Re[, mach])
//	  • negative stall angle(Re[, mach]) (shares the stall input matrix)
//	  • max-L/D angle(Re[, mach])        (shares the stall input matrix)
//	together with min/max bounds of the training envelope and the airfoil
//	surface coordinates.
//
// ✨ Key features:
//   - lenient JSON decoding of training and coordinate files
//   - idempotent per-airfoil build; a failed build leaves SurrogateBuilt false
//   - stall search outward from the mid-alpha index with a counted,
//     logged boundary fallback
//   - one-time Freeze barrier, after which queries are lock-free and safe
//     for concurrent use
//   - configurable out-of-envelope policy (Clamp or Abort)
//   - Loader pulling tables from any source/core.Source, memoised with go-cache
//
// ⚙️ Usage:
//
//	store := polar.NewStore(polar.WithLogger(logger))
//	data, err := polar.DecodeTraining(r)
//	err = store.Build("naca0012", data)
//	store.Freeze()
//	cl, cd, err := store.AeroValues("naca0012", 4.0, 2e5, 0, 1)
package polar
