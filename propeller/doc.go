// Package propeller trims a propeller to a required thrust with Blade
// Element Momentum Theory and post-processes its tonal noise.
//
// 🚀 Lifecycle
//
//	Uninitialized ─Attach→ Configured ─SolveThrust→ Converging ─→ Trimmed
//	                                                           └─→ Failed
//
//	Attach binds a blade (with its polar store), a Controller and the
//	atmosphere. The atmosphere is held through a weak pointer: it is owned
//	by the propulsion system and every solve resolves it again, failing
//	with ErrConfiguration once it is gone.
//
// ✨ Solve
//   - Thrust coefficient Ct = T/(ρ·A·(ΩR)²) and tip-loss factor
//     F = 1 - sqrt(2·Ct)/B, refined together with the effective disk
//     area A·(F² - rc²) by a short fixed-point loop.
//   - Induced inflow: closed form in axial flight, otherwise a secant
//     iteration on v = V·cos(α) + v_h²/|(V·sin(α), v)|.
//   - Integration over the radial×azimuthal mesh with a first-harmonic
//     nonuniform inflow correction; sectional CL/CD come from the polar
//     store at the local Reynolds and Mach numbers.
//   - Trim: optim.Minimize adjusts pitch and/or RPM to minimise power
//     subject to Ct_obtained = Ct_required. Budget exhaustion marks the
//     point Failed with sentinel math.MaxFloat64 power and Ct and
//     ErrConvergenceFailure; it never panics.
//
// ⚙️ Usage:
//
//	p := propeller.New("front", propeller.WithLogger(logger))
//	err := p.Attach(bld, propeller.NewController(propeller.ModeBoth, 60, 5), env)
//	res, err := p.SolveThrust(50, 0)
//	_, err = p.SolveAcoustics(10, 90, propeller.DefaultRootCut)
//	spl := p.SoundPressureLevel()
//
// "RPM" is the rotational speed Ω in rad/s throughout; pitch and angles
// are in degrees. A Propeller is not safe for concurrent use; distinct
// propellers may be solved concurrently against one frozen polar store.
package propeller
