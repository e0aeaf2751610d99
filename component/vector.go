// SPDX-License-Identifier: MIT

package component

import "math"

// Vec3 is a body-axis triple.
type Vec3 [3]float64

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Scale returns k·v.
func (v Vec3) Scale(k float64) Vec3 { return Vec3{k * v[0], k * v[1], k * v[2]} }

// Cross returns v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// EulerAngles is an attitude in degrees.
type EulerAngles struct {
	Psi   float64 `json:"psi" yaml:"psi"`     // yaw
	Theta float64 `json:"theta" yaml:"theta"` // pitch
	Phi   float64 `json:"phi" yaml:"phi"`     // roll
}

// Rotate expresses v in the frame reached by yawing, pitching and rolling
// through a: R_φ·R_θ·R_ψ·v.
func Rotate(v Vec3, a EulerAngles) Vec3 {
	const deg = math.Pi / 180
	sp, cp := math.Sincos(a.Psi * deg)
	st, ct := math.Sincos(a.Theta * deg)
	sf, cf := math.Sincos(a.Phi * deg)

	// yaw
	v = Vec3{cp*v[0] + sp*v[1], -sp*v[0] + cp*v[1], v[2]}
	// pitch
	v = Vec3{ct*v[0] - st*v[2], v[1], st*v[0] + ct*v[2]}
	// roll
	return Vec3{v[0], cf*v[1] + sf*v[2], -sf*v[1] + cf*v[2]}
}

// Unrotate is the inverse of Rotate: it maps a vector given in the
// rotated frame back into the original one.
func Unrotate(v Vec3, a EulerAngles) Vec3 {
	const deg = math.Pi / 180
	sp, cp := math.Sincos(a.Psi * deg)
	st, ct := math.Sincos(a.Theta * deg)
	sf, cf := math.Sincos(a.Phi * deg)

	v = Vec3{v[0], cf*v[1] - sf*v[2], sf*v[1] + cf*v[2]}
	v = Vec3{ct*v[0] + st*v[2], v[1], -st*v[0] + ct*v[2]}

	return Vec3{cp*v[0] - sp*v[1], sp*v[0] + cp*v[1], v[2]}
}
