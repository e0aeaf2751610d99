// Package propel is a propeller performance engine: it trims rotors to a
// required thrust with blade-element momentum theory and predicts the
// tonal noise of the trimmed blades.
//
// 🚀 What is inside?
//
//	A layered set of small packages, each usable on its own:
//		• surrogate: k-nearest-neighbour interpolation over training rows
//		• polar: per-airfoil CL/CD surrogates plus stall and max-L/D tables
//		• blade: validated radial sections with interpolated geometry
//		• atmosphere: ISA state for one operating point
//		• optim: derivative-free, bound- and equality-constrained minimiser
//		• propeller: BEMT evaluation, induced inflow and power-optimal trim
//		• acoustics: Hanson far-field loading noise and SPL
//		• propulsion: rotors sharing an atmosphere, concurrent solves, sweeps
//		• component: aircraft tree resolving forces and moments
//
// ✨ Around the solver
//
//	source/   fs, memory and S3 backends for polar training files
//	metrics/  Prometheus counters for fallbacks, failures and outcomes
//	results/  sweep archive over sqlite or postgres
//	export/   xlsx workbook and pdf report
//	config/   YAML run files with .env overrides
//	httpapi/  HTTP surface with per-client rate limiting
//	cmd/propsolve CLI tying the above together
//
// Quick start:
//
//	store := polar.NewStore()
//	_ = store.Build("naca0012", training)
//	store.Freeze()
//	bld, _ := blade.New(0.6, sections, blade.WithPolars(store))
//	env, _ := atmosphere.SeaLevel(0)
//	p := propeller.New("front")
//	_ = p.Attach(bld, propeller.NewController(propeller.ModeBoth, 60, 5), env)
//	res, err := p.SolveThrust(50, 0)
//
// See examples/ for complete scenarios.
package propel
