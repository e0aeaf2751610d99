// Package polartest builds synthetic polar tables for tests and examples.
package polartest

import (
	"encoding/json"
	"math"

	"github.com/katalvlaran/propel/polar"
)

// Table describes a synthetic thin-airfoil polar: CL = 2π·alpha (radians)
// up to ±StallAlpha, a linear loss of lift beyond it, and a parabolic drag
// polar CD = CD0 + K·CL².
type Table struct {
	AlphaMin, AlphaMax, AlphaStep float64   // degrees
	Re                            []float64 // one block per value
	StallAlpha                    float64   // degrees; 0 keeps CL linear everywhere
	CD0, K                        float64
}

// Default is a -20°..20° sweep at three Reynolds numbers with stall at ±12°.
func Default() Table {
	return Table{
		AlphaMin: -20, AlphaMax: 20, AlphaStep: 1,
		Re:         []float64{5e4, 2e5, 1e6},
		StallAlpha: 12,
		CD0:        0.008,
		K:          0.01,
	}
}

// Lift returns the synthetic CL at alpha degrees.
func (t Table) Lift(alpha float64) float64 {
	slope := 2 * math.Pi * math.Pi / 180
	if t.StallAlpha <= 0 || math.Abs(alpha) <= t.StallAlpha {
		return slope * alpha
	}
	peak := slope * t.StallAlpha
	over := math.Abs(alpha) - t.StallAlpha

	return math.Copysign(peak-0.05*over, alpha)
}

// Drag returns the synthetic CD at alpha degrees.
func (t Table) Drag(alpha float64) float64 {
	cl := t.Lift(alpha)

	return t.CD0 + t.K*cl*cl
}

// Build returns the table in the row order the store expects.
func (t Table) Build() polar.TrainingData {
	var td polar.TrainingData
	n := int(math.Round((t.AlphaMax-t.AlphaMin)/t.AlphaStep)) + 1
	for _, re := range t.Re {
		for i := 0; i < n; i++ {
			a := t.AlphaMin + float64(i)*t.AlphaStep
			td.Alpha = append(td.Alpha, a)
			td.Re = append(td.Re, re)
			td.Mach = append(td.Mach, 0)
			td.CL = append(td.CL, t.Lift(a))
			td.CD = append(td.CD, t.Drag(a))
		}
	}

	return td
}

// JSON encodes td as a training file.
func JSON(td polar.TrainingData) []byte {
	b, _ := json.Marshal(map[string][]float64{
		polar.KeyCL:    td.CL,
		polar.KeyCD:    td.CD,
		polar.KeyRe:    td.Re,
		polar.KeyAlpha: td.Alpha,
		polar.KeyMach:  td.Mach,
	})

	return b
}

// CoordinatesJSON encodes a symmetric 12% section as a coordinate file.
func CoordinatesJSON() []byte {
	var xs, yu, yl []float64
	for i := 0; i <= 20; i++ {
		x := float64(i) / 20
		y := 5 * 0.12 * (0.2969*math.Sqrt(x) - 0.126*x - 0.3516*x*x + 0.2843*x*x*x - 0.1015*x*x*x*x)
		xs = append(xs, x)
		yu = append(yu, y)
		yl = append(yl, -y)
	}
	b, _ := json.Marshal(map[string]any{
		polar.KeyUpperX:       xs,
		polar.KeyUpperY:       yu,
		polar.KeyLowerX:       xs,
		polar.KeyLowerY:       yl,
		polar.KeyMaxThickness: 0.12,
	})

	return b
}

// Store returns a frozen store holding one airfoil built from t.
func Store(name string, t Table, opts ...polar.Option) (*polar.Store, error) {
	s := polar.NewStore(opts...)
	if err := s.Build(name, t.Build()); err != nil {
		return nil, err
	}
	s.Freeze()

	return s, nil
}
