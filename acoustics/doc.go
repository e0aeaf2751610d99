// Package acoustics computes tonal rotor noise in the frequency domain
// from a trimmed BEMT field, following Hanson's helicoidal-surface
// formulation for loading and thickness-free sources.
//
// 🚀 Harmonics
//
//	For each harmonic m = 1..DefaultHarmonics the far-field pressure is
//
//	  p_m = F_m · (B/Nψ) · Σ_cells M_r²·e^{i(φ0+φs)}·J_mB(x)·i(k_x·C_D/2 + k_y·C_L/2)·Ψ(k_x)·Δr/R
//
//	with the forward-flight factor
//
//	  F_m = -ρ0·c0²·B·sinθ·e^{i·mB(Ω·y/c0 - π/2)} / (8π·(y/D)·(1 - M_x·cosθ))
//
//	where y is the observer distance, θ its elevation, M_x the inflow
//	Mach number and M_r the sectional Mach number. Ψ is the chordwise
//	source transform of a uniform distribution, sin(k_x/2)/(k_x/2).
//
// ✨ Sound pressure level
//
//	SPL = 20·log10(p_rms / 20 µPa), p_rms² = Σ 2·|p_m|² over harmonics
//	whose frequency m·B·Ω/2π lies strictly inside 20 Hz..20 kHz. Zero
//	pressure maps to 0 dB and the level never goes below 0 dB.
//
// ⚙️ Usage:
//
//	p, err := acoustics.Harmonics(field, acoustics.Observer{Distance: 10, Elevation: 90})
//	spl := acoustics.SPL(p, field.BladePassage())
package acoustics
