// Package surrogate implements a fixed-capacity k-nearest-neighbour
// regressor used to approximate precomputed aerodynamic polars.
//
// 🚀 What is a surrogate here?
//
//	A table of (inputs, output) training rows, e.g. (alpha, Re) -> CL,
//	queried at arbitrary points. Each query returns either the plain mean
//	of the k closest outputs or their inverse-distance weighted mean.
//
// ✨ Key features:
//   - column-major, growable-but-capped input storage (Inputs)
//   - relative, per-dimension scaled distance: ((x - p) / (p·s))²
//   - partial selection (quickselect) of the k nearest rows, O(n) expected
//   - exact-match short-circuit in weighted mode
//   - explicit, read-only sharing of one Inputs matrix between several
//     interpolators (CL/CD, stall/max-L/D tables)
//   - runtime-checked dimensionality with specialised 1/2/3-D kernels
//
// ⚙️ Usage:
//
//	ip, err := surrogate.New(2, 50000,
//		surrogate.WithScaling(1.0, 0.01),
//		surrogate.WithMeanSize(5),
//	)
//	err = ip.AddTrainingData(rows, cl)
//	v, err := ip.EvaluateWeighted([]float64{alpha, re})
//
// Concurrency:
//
//	Training (AddTrainingData) is not synchronised. Once training is done,
//	Evaluate/EvaluateWeighted/Query may be called from many goroutines.
//
// Performance:
//
//   - Query:  O(n·d) distances + O(n) expected selection
//   - Memory: O(capacity·d) for inputs, O(n) scratch per query (pooled)
package surrogate
