package polar

import (
	"github.com/katalvlaran/propel/surrogate"
)

// Bounds is the trained envelope of one airfoil.
type Bounds struct {
	CLMin, CLMax       float64
	CDMin, CDMax       float64
	AlphaMin, AlphaMax float64
	ReMin, ReMax       float64
	MachMin, MachMax   float64
}

// Coordinates are the airfoil surface polylines, x shifted to [-0.5, 0.5].
type Coordinates struct {
	UpperX, UpperY []float64
	LowerX, LowerY []float64
	MaxThickness   float64
}

// TrainingData is one decoded polar table. Rows follow a Cartesian sweep
// with alpha varying fastest, then Re, then mach:
// row (m, j, a) lives at index (m·NRe + j)·NAlpha + a.
type TrainingData struct {
	CL, CD, Re, Alpha, Mach []float64
}

// Layout is the sweep shape derived from the unique values of a table.
type Layout struct {
	NAlpha, NRe, NMach int
}

// Rows returns the number of table rows the layout addresses.
func (l Layout) Rows() int { return l.NAlpha * l.NRe * l.NMach }

// Airfoil is one store entry. Fields are read-only once SurrogateBuilt is true.
type Airfoil struct {
	Name           string
	SurrogateBuilt bool
	Bounds         Bounds
	Layout         Layout
	UniqueRe       []float64 // one per (mach, Re) block
	UniqueMach     []float64 // one per mach block
	Coords         *Coordinates
	Fallbacks      int // stall/max-L/D searches that ended on a boundary

	cl, cd   *surrogate.Interpolator
	posStall *surrogate.Interpolator
	negStall *surrogate.Interpolator
	maxLD    *surrogate.Interpolator
}

// CL returns the lift-coefficient interpolator (nil before build).
func (a *Airfoil) CL() *surrogate.Interpolator { return a.cl }

// CD returns the drag-coefficient interpolator (nil before build).
func (a *Airfoil) CD() *surrogate.Interpolator { return a.cd }
