// Package atmosphere evaluates the International Standard Atmosphere at an
// operating point and carries the freestream state the solvers read.
//
// 🚀 Model
//
//	T   = 288.15 - 6.5·h/1000 + ΔT          [K]
//	μ   = 1.48e-6·T^1.5 / (T + 110.4)       [Pa·s]
//	a   = sqrt(γ·R·T), γ = 1.4, R = 287.05  [m/s]
//	p   = 101325·(1 - 0.0065·h/T)^5.2561    [Pa]
//	ρ   = 1.225·(1 - 22.558e-6·h)^4.2559    [kg/m³]
//	q   = ρ·V²/2                            [Pa]
//
// Density follows the standard-temperature lapse and ignores ΔT.
//
// ⚙️ Usage:
//
//	env, err := atmosphere.New(atmosphere.Conditions{Altitude: 1000, Velocity: 30})
//	rho, a := env.Density(), env.SpeedOfSound()
package atmosphere
