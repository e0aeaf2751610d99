// SPDX-License-Identifier: MIT

package propeller

import (
	"encoding/json"
	"io"
	"sync"
)

// Vector is a blade-frame triple: X tangential, Y radial, Z axial.
type Vector struct {
	X, Y, Z float64
}

// DetailedSink collects per-cell velocities, angles of attack, forces and
// acoustic contributions of the last trim and acoustic solve. It is safe
// for concurrent use, so one sink may be shared by several propellers.
type DetailedSink struct {
	mu       sync.Mutex
	velocity []Vector
	aoa      []float64
	force    []Vector
	acoustic []complex128
}

// NewDetailedSink returns an empty sink.
func NewDetailedSink() *DetailedSink { return &DetailedSink{} }

// AddVelocity appends one sectional velocity.
func (s *DetailedSink) AddVelocity(v Vector) {
	s.mu.Lock()
	s.velocity = append(s.velocity, v)
	s.mu.Unlock()
}

// AddAngleOfAttack appends one sectional angle of attack in degrees.
func (s *DetailedSink) AddAngleOfAttack(alpha float64) {
	s.mu.Lock()
	s.aoa = append(s.aoa, alpha)
	s.mu.Unlock()
}

// AddForce appends one sectional force.
func (s *DetailedSink) AddForce(f Vector) {
	s.mu.Lock()
	s.force = append(s.force, f)
	s.mu.Unlock()
}

// AddAcoustic appends one acoustic pressure contribution.
func (s *DetailedSink) AddAcoustic(p complex128) {
	s.mu.Lock()
	s.acoustic = append(s.acoustic, p)
	s.mu.Unlock()
}

// ResetVelocity clears the velocity points.
func (s *DetailedSink) ResetVelocity() {
	s.mu.Lock()
	s.velocity = s.velocity[:0]
	s.mu.Unlock()
}

// ResetAngleOfAttack clears the angle-of-attack points.
func (s *DetailedSink) ResetAngleOfAttack() {
	s.mu.Lock()
	s.aoa = s.aoa[:0]
	s.mu.Unlock()
}

// ResetForce clears the force points.
func (s *DetailedSink) ResetForce() {
	s.mu.Lock()
	s.force = s.force[:0]
	s.mu.Unlock()
}

// ResetAcoustic clears the acoustic points.
func (s *DetailedSink) ResetAcoustic() {
	s.mu.Lock()
	s.acoustic = s.acoustic[:0]
	s.mu.Unlock()
}

// Reset clears everything.
func (s *DetailedSink) Reset() {
	s.ResetVelocity()
	s.ResetAngleOfAttack()
	s.ResetForce()
	s.ResetAcoustic()
}

// Snapshot is a copy of the sink contents.
type Snapshot struct {
	Velocity      []Vector
	AngleOfAttack []float64
	Force         []Vector
	Acoustic      []complex128
}

// Snapshot copies the current contents.
func (s *DetailedSink) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Velocity:      append([]Vector(nil), s.velocity...),
		AngleOfAttack: append([]float64(nil), s.aoa...),
		Force:         append([]Vector(nil), s.force...),
		Acoustic:      append([]complex128(nil), s.acoustic...),
	}
}

// JSON keys written by the Write*JSON methods.
const (
	KeyVelocityX    = "VELOCITY-X"
	KeyVelocityY    = "VELOCITY-Y"
	KeyVelocityZ    = "VELOCITY-Z"
	KeyAngleOfAtt   = "AOA"
	KeyForceX       = "FORCE-X"
	KeyForceY       = "FORCE-Y"
	KeyForceZ       = "FORCE-Z"
	KeyAcousticReal = "ACOUSTIC-REAL"
	KeyAcousticImag = "ACOUSTIC-IMAG"
)

// WriteVelocityJSON writes {"VELOCITY-X": [...], "VELOCITY-Y": [...], "VELOCITY-Z": [...]}.
func (s *DetailedSink) WriteVelocityJSON(w io.Writer) error {
	return writeVectors(w, s.Snapshot().Velocity, KeyVelocityX, KeyVelocityY, KeyVelocityZ)
}

// WriteAngleOfAttackJSON writes {"AOA": [...]}.
func (s *DetailedSink) WriteAngleOfAttackJSON(w io.Writer) error {
	aoa := s.Snapshot().AngleOfAttack
	if aoa == nil {
		aoa = []float64{}
	}

	return json.NewEncoder(w).Encode(map[string][]float64{KeyAngleOfAtt: aoa})
}

// WriteForceJSON writes {"FORCE-X": [...], "FORCE-Y": [...], "FORCE-Z": [...]}.
func (s *DetailedSink) WriteForceJSON(w io.Writer) error {
	return writeVectors(w, s.Snapshot().Force, KeyForceX, KeyForceY, KeyForceZ)
}

// WriteAcousticJSON writes {"ACOUSTIC-REAL": [...], "ACOUSTIC-IMAG": [...]}.
func (s *DetailedSink) WriteAcousticJSON(w io.Writer) error {
	pts := s.Snapshot().Acoustic
	re, im := make([]float64, len(pts)), make([]float64, len(pts))
	for i, p := range pts {
		re[i], im[i] = real(p), imag(p)
	}

	return json.NewEncoder(w).Encode(map[string][]float64{KeyAcousticReal: re, KeyAcousticImag: im})
}

func writeVectors(w io.Writer, vs []Vector, kx, ky, kz string) error {
	x, y, z := make([]float64, len(vs)), make([]float64, len(vs)), make([]float64, len(vs))
	for i, v := range vs {
		x[i], y[i], z[i] = v.X, v.Y, v.Z
	}

	return json.NewEncoder(w).Encode(map[string][]float64{kx: x, ky: y, kz: z})
}
