// SPDX-License-Identifier: MIT

package polar

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/surrogate"
)

// Store maps airfoil names to their surrogate models.
//
// Build and AttachCoordinates are not synchronised and must finish before
// Freeze; queries after Freeze take no lock and may run concurrently.
type Store struct {
	opts     Options
	logger   l.Wrapper
	airfoils map[string]*Airfoil
	frozen   atomic.Bool
	freeze   sync.Once
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	o := gatherOptions(opts...)

	return &Store{
		opts:     o,
		logger:   o.logger.WithFields(l.StringField(l.ClsKey, "polar.Store")),
		airfoils: make(map[string]*Airfoil),
	}
}

// Register creates empty entries for names so they can be listed before build.
func (s *Store) Register(names ...string) error {
	if s.frozen.Load() {
		return ErrFrozen
	}
	for _, n := range names {
		s.entry(n)
	}

	return nil
}

func (s *Store) entry(name string) *Airfoil {
	af, ok := s.airfoils[name]
	if !ok {
		af = &Airfoil{Name: name}
		s.airfoils[name] = af
	}

	return af
}

// Freeze closes the build phase. It is idempotent.
func (s *Store) Freeze() {
	s.freeze.Do(func() {
		s.frozen.Store(true)
		s.logger.WithFields(l.IntField("airfoils", len(s.airfoils))).Debug("polar store frozen")
	})
}

// Frozen reports whether Freeze has been called.
func (s *Store) Frozen() bool { return s.frozen.Load() }

// Names returns the registered airfoil names in sorted order.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.airfoils))
	for n := range s.airfoils {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}

// Airfoil returns the entry for name.
func (s *Store) Airfoil(name string) (*Airfoil, bool) {
	af, ok := s.airfoils[name]

	return af, ok
}

// Build constructs the five surrogates of name from td. Building an airfoil
// that is already built is a no-op. On failure the entry stays registered
// with SurrogateBuilt == false.
func (s *Store) Build(name string, td TrainingData) error {
	if s.frozen.Load() {
		return ErrFrozen
	}
	af := s.entry(name)
	if af.SurrogateBuilt {
		return nil
	}
	built, err := s.build(name, td)
	if err != nil {
		s.logger.WithFields(l.StringField("airfoil", name), l.ErrorField(err)).Error("surrogate build failed")
		return fmt.Errorf("build %s: %w", name, err)
	}
	built.Coords = af.Coords
	*af = *built

	return nil
}

func (s *Store) build(name string, td TrainingData) (*Airfoil, error) {
	lay, err := deriveLayout(td, s.opts.useMach)
	if err != nil {
		return nil, err
	}
	n := lay.Rows()
	td = TrainingData{CL: td.CL[:n], CD: td.CD[:n], Re: td.Re[:n], Alpha: td.Alpha[:n], Mach: td.Mach[:n]}

	af := &Airfoil{Name: name, Layout: lay}
	polarScale, tableScale := scalingPolar2D, scalingTable1D
	if s.opts.useMach {
		polarScale, tableScale = scalingPolar3D, scalingTable2D
	}

	// CL / CD over (alpha, Re) or (alpha, mach, Re)
	if af.cl, err = surrogate.New(len(polarScale), s.opts.capacity,
		s.surrogateOpts(polarScale)...); err != nil {
		return nil, err
	}
	rows := make([][]float64, n)
	for i := range rows {
		if s.opts.useMach {
			rows[i] = []float64{td.Alpha[i], td.Mach[i], td.Re[i]}
		} else {
			rows[i] = []float64{td.Alpha[i], td.Re[i]}
		}
	}
	if err = af.cl.AddTrainingData(rows, td.CL); err != nil {
		return nil, err
	}
	if af.cd, err = surrogate.NewShared(af.cl.Inputs(),
		s.surrogateOpts(polarScale)...); err != nil {
		return nil, err
	}
	if err = af.cd.SetOutputs(td.CD); err != nil {
		return nil, err
	}

	// stall and max-L/D tables over Re or (mach, Re)
	bt := stallTables(td, lay)
	s.reportFallbacks(name, bt.fallbacks)
	af.Fallbacks = bt.fallbacks[0] + bt.fallbacks[1] + bt.fallbacks[2]

	if af.posStall, err = surrogate.New(len(tableScale), s.opts.tableCap,
		s.surrogateOpts(tableScale)...); err != nil {
		return nil, err
	}
	keys := make([][]float64, len(bt.re))
	for i := range keys {
		if s.opts.useMach {
			keys[i] = []float64{bt.mach[i], bt.re[i]}
		} else {
			keys[i] = []float64{bt.re[i]}
		}
	}
	if err = af.posStall.AddTrainingData(keys, bt.posStall); err != nil {
		return nil, err
	}
	for _, t := range []struct {
		dst  **surrogate.Interpolator
		outs []float64
	}{{&af.negStall, bt.negStall}, {&af.maxLD, bt.maxLD}} {
		if *t.dst, err = surrogate.NewShared(af.posStall.Inputs(),
			s.surrogateOpts(tableScale)...); err != nil {
			return nil, err
		}
		if err = (*t.dst).SetOutputs(t.outs); err != nil {
			return nil, err
		}
	}

	af.UniqueRe = uniqueSorted(bt.re)
	af.UniqueMach = bt.uniqueMach
	af.Bounds.CLMin, af.Bounds.CLMax = minMax(td.CL)
	af.Bounds.CDMin, af.Bounds.CDMax = minMax(td.CD)
	af.Bounds.AlphaMin, af.Bounds.AlphaMax = minMax(td.Alpha)
	af.Bounds.ReMin, af.Bounds.ReMax = minMax(td.Re)
	af.Bounds.MachMin, af.Bounds.MachMax = minMax(td.Mach)
	af.SurrogateBuilt = true

	return af, nil
}

// surrogateOpts returns a fresh option list: store-wide options plus scaling.
func (s *Store) surrogateOpts(scale []float64) []surrogate.Option {
	out := make([]surrogate.Option, 0, len(s.opts.surrogateKV)+1)
	out = append(out, s.opts.surrogateKV...)

	return append(out, surrogate.WithScaling(scale...))
}

func (s *Store) reportFallbacks(name string, fb [3]int) {
	for i, table := range []string{metrics.TablePositiveStall, metrics.TableNegativeStall, metrics.TableMaxLD} {
		for k := 0; k < fb[i]; k++ {
			s.opts.metrics.StallFallback(table)
		}
		if fb[i] > 0 {
			s.logger.WithFields(
				l.StringField("airfoil", name),
				l.StringField("table", table),
				l.IntField("blocks", fb[i]),
			).Warn("failed to find the stall angle, using the table boundary")
		}
	}
}

// AttachCoordinates stores surface coordinates for name.
func (s *Store) AttachCoordinates(name string, c Coordinates) error {
	if s.frozen.Load() {
		return ErrFrozen
	}
	cc := c
	s.entry(name).Coords = &cc

	return nil
}

// Coordinates returns the surface coordinates of name.
func (s *Store) Coordinates(name string) (Coordinates, error) {
	af, ok := s.airfoils[name]
	if !ok {
		return Coordinates{}, fmt.Errorf("%s: %w", name, ErrUnknownAirfoil)
	}
	if af.Coords == nil || len(af.Coords.UpperX) == 0 || len(af.Coords.LowerX) == 0 {
		return Coordinates{}, fmt.Errorf("%s: %w", name, ErrNoCoordinates)
	}

	return *af.Coords, nil
}

// MaxThickness returns the maximum thickness ratio of name.
func (s *Store) MaxThickness(name string) (float64, error) {
	af, ok := s.airfoils[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrUnknownAirfoil)
	}
	if af.Coords == nil || af.Coords.MaxThickness == 0 {
		return 0, fmt.Errorf("%s: max thickness: %w", name, ErrNoCoordinates)
	}

	return af.Coords.MaxThickness, nil
}

func (s *Store) built(name string) (*Airfoil, error) {
	af, ok := s.airfoils[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownAirfoil)
	}
	if !af.SurrogateBuilt {
		return nil, fmt.Errorf("%s: %w", name, ErrNotBuilt)
	}

	return af, nil
}

// InRange reports ErrDataOutOfRange when alpha or re lies outside the
// trained envelope of name.
func (s *Store) InRange(name string, alpha, re float64) error {
	af, err := s.built(name)
	if err != nil {
		return err
	}
	b := af.Bounds
	if alpha < b.AlphaMin || alpha > b.AlphaMax || re < b.ReMin || re > b.ReMax {
		return fmt.Errorf("%s: alpha %g in [%g, %g], Re %g in [%g, %g]: %w", name,
			alpha, b.AlphaMin, b.AlphaMax, re, b.ReMin, b.ReMax, ErrDataOutOfRange)
	}

	return nil
}

// AeroValues returns (CL, CD) of name at (alpha, re, mach), both multiplied
// by multiplier. Alpha is in degrees. mach is ignored by 2-D stores.
func (s *Store) AeroValues(name string, alpha, re, mach, multiplier float64) (cl, cd float64, err error) {
	af, err := s.built(name)
	if err != nil {
		return 0, 0, err
	}
	if rerr := s.InRange(name, alpha, re); rerr != nil {
		if s.opts.policy == Abort {
			return 0, 0, rerr
		}
		s.opts.metrics.OutOfRangeLookup()
		alpha = clamp(alpha, af.Bounds.AlphaMin, af.Bounds.AlphaMax)
		re = clamp(re, af.Bounds.ReMin, af.Bounds.ReMax)
	}
	point := []float64{alpha, re}
	if s.opts.useMach {
		point = []float64{alpha, mach, re}
	}
	nb, err := af.cl.Query(point)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", name, err)
	}
	if cl, err = af.cl.Weighted(nb); err != nil {
		return 0, 0, err
	}
	if cd, err = af.cd.Weighted(nb); err != nil {
		return 0, 0, err
	}

	return cl * multiplier, cd * multiplier, nil
}

// StallAngles returns the positive and negative stall angles of name at re.
func (s *Store) StallAngles(name string, re, mach float64) (pos, neg float64, err error) {
	af, err := s.built(name)
	if err != nil {
		return 0, 0, err
	}
	nb, err := af.posStall.Query(s.tableKey(re, mach))
	if err != nil {
		return 0, 0, err
	}
	if pos, err = af.posStall.Weighted(nb); err != nil {
		return 0, 0, err
	}
	neg, err = af.negStall.Weighted(nb)

	return pos, neg, err
}

// MaxLDAngle returns the angle of maximum CL/CD of name at re.
func (s *Store) MaxLDAngle(name string, re, mach float64) (float64, error) {
	af, err := s.built(name)
	if err != nil {
		return 0, err
	}

	return af.maxLD.EvaluateWeighted(s.tableKey(re, mach))
}

func (s *Store) tableKey(re, mach float64) []float64 {
	if s.opts.useMach {
		return []float64{mach, re}
	}

	return []float64{re}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
