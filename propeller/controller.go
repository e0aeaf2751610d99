// SPDX-License-Identifier: MIT

package propeller

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects which controls the trim may move.
type Mode int

const (
	// ModePitch trims root pitch at fixed RPM.
	ModePitch Mode = iota
	// ModeRPM trims RPM at fixed pitch.
	ModeRPM
	// ModeBoth trims RPM and pitch together.
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModePitch:
		return "pitch"
	case ModeRPM:
		return "rpm"
	case ModeBoth:
		return "both"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "pitch", "rpm" or "both", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pitch":
		return ModePitch, nil
	case "rpm":
		return ModeRPM, nil
	case "both":
		return ModeBoth, nil
	}

	return 0, fmt.Errorf("mode %q: %w", s, ErrBadController)
}

// Default control bounds, ordered [rpm, pitch].
var (
	DefaultLowerBounds = [2]float64{0, 0}
	DefaultUpperBounds = [2]float64{100, 90}
)

// Controller holds the current controls and their trim bounds. Lower and
// Upper are ordered [rpm, pitch].
type Controller struct {
	Mode  Mode
	RPM   float64 // rad/s
	Pitch float64 // degrees
	Lower [2]float64
	Upper [2]float64
}

// NewController returns a controller with the default bounds.
func NewController(mode Mode, rpm, pitch float64) Controller {
	return Controller{Mode: mode, RPM: rpm, Pitch: pitch, Lower: DefaultLowerBounds, Upper: DefaultUpperBounds}
}

// Validate checks the mode and that each free control has finite,
// strictly ordered bounds.
func (c Controller) Validate() error {
	if c.Mode < ModePitch || c.Mode > ModeBoth {
		return fmt.Errorf("%v: %w", c.Mode, ErrBadController)
	}
	lo, hi := c.Bounds()
	for i := range lo {
		if math.IsNaN(lo[i]) || math.IsNaN(hi[i]) || math.IsInf(lo[i], 0) || math.IsInf(hi[i], 0) || !(lo[i] < hi[i]) {
			return fmt.Errorf("%v bounds [%g, %g]: %w", c.Mode, lo[i], hi[i], ErrBadController)
		}
	}
	for _, v := range []float64{c.RPM, c.Pitch} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%v: non-finite control: %w", c.Mode, ErrBadController)
		}
	}

	return nil
}

// Free returns the number of trimmed controls.
func (c Controller) Free() int {
	if c.Mode == ModeBoth {
		return 2
	}

	return 1
}

// X returns the free controls in optimizer order: [pitch], [rpm] or
// [rpm, pitch].
func (c Controller) X() []float64 {
	switch c.Mode {
	case ModePitch:
		return []float64{c.Pitch}
	case ModeRPM:
		return []float64{c.RPM}
	default:
		return []float64{c.RPM, c.Pitch}
	}
}

// Apply writes optimizer coordinates back into the controls.
func (c *Controller) Apply(x []float64) {
	switch c.Mode {
	case ModePitch:
		c.Pitch = x[0]
	case ModeRPM:
		c.RPM = x[0]
	default:
		c.RPM, c.Pitch = x[0], x[1]
	}
}

// Bounds returns the bounds of the free controls in X order. For
// ModePitch the [rpm, pitch] arrays are reversed so the pitch bound
// comes first.
func (c Controller) Bounds() (lower, upper []float64) {
	lo, hi := c.Lower, c.Upper
	if c.Mode == ModePitch {
		lo[0], lo[1] = lo[1], lo[0]
		hi[0], hi[1] = hi[1], hi[0]
	}
	n := c.Free()

	return append([]float64(nil), lo[:n]...), append([]float64(nil), hi[:n]...)
}
