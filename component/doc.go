// Package component resolves forces, moments, positions and attitudes
// over an aircraft component tree.
//
// A Component is a tagged union: its Kind selects how each resolver
// treats it. Plane and PropulsionSystem aggregate their children, Wing
// carries loads from an external aerodynamic solver, and Propeller
// carries its weight and the thrust of an attached propeller.
//
//	plane ─┬─ wing
//	       └─ propulsion system ─┬─ propeller ×2
//	                             └─ propeller
//
// Angles are degrees; Rotate applies the yaw, pitch and roll matrices in
// that order (R_φ·R_θ·R_ψ·v).
package component
