// SPDX-License-Identifier: MIT

package optim

import (
	"fmt"
	"math"
)

const (
	// muFactor scales the multiplier estimate into the merit penalty.
	muFactor = 2.0
	// acceptRatio is the actual/predicted reduction that keeps ρ unchanged.
	acceptRatio = 0.1
	// farFactor marks a vertex farther than farFactor·ρ for replacement.
	farFactor = 2.0
	// flatFactor marks a vertex whose new direction is shorter than
	// flatFactor·ρ for replacement.
	flatFactor = 0.25
	// minStep is the fraction of ρ below which a step is treated as null.
	minStep = 1e-3
	// rhoFloor bounds ρ from below in normalised units.
	rhoFloor = 1e-12
	// maxReserve caps the evaluations kept back for restoration.
	maxReserve = 10
)

type point struct {
	z    []float64
	f, c float64
}

func (p point) rejected() bool { return math.IsInf(p.f, 1) }

type solver struct {
	p Problem
	o Options
	n int
	w []float64 // box widths

	evals   int
	pts     []point
	sim     []point
	rho     float64
	mu      float64
	lastA   []float64 // constraint gradient of the last linear model
	startEr error
}

// Minimize solves p from x0.
//
// Implementation:
//   - Stage 1: Validate p and x0; map x0 into the unit box; evaluate it.
//   - Stage 2: Build the initial simplex z0 ± ρ·e_i.
//   - Stage 3: Iterate linear-model trust-region steps until ρ reaches the
//     xtol floor at a feasible point, or until only the restoration
//     reserve of the budget remains.
//   - Stage 4: Restore feasibility by a secant search along the last
//     constraint gradient when the best point is still infeasible.
//
// Returns:
//   - Result: best point (feasible points first, then lowest merit).
//   - error: ErrMaxEval when the result is infeasible; ErrStartFailed,
//     ErrBadBounds, ErrDimension, ErrNilEval on bad input.
//
// Complexity:
//   - O(maxEval · n³) arithmetic beyond the evaluations themselves.
func Minimize(p Problem, x0 []float64, opts ...Option) (Result, error) {
	if err := p.validate(x0); err != nil {
		return Result{}, err
	}
	o := gatherOptions(opts...)
	n := len(x0)
	s := &solver{p: p, o: o, n: n, w: make([]float64, n), rho: o.rhoBegin}
	z0 := make([]float64, n)
	for i := 0; i < n; i++ {
		s.w[i] = p.Upper[i] - p.Lower[i]
		z0[i] = (x0[i] - p.Lower[i]) / s.w[i]
	}
	clip(z0)

	b := s.eval(z0)
	if b.rejected() {
		if s.startEr != nil {
			return Result{Evaluations: s.evals}, fmt.Errorf("%w: %v", ErrStartFailed, s.startEr)
		}

		return Result{Evaluations: s.evals}, ErrStartFailed
	}
	s.sim = append(s.sim, b)
	for i := 0; i < n && s.budget(); i++ {
		z := append([]float64(nil), b.z...)
		if z[i]+s.rho <= 1 {
			z[i] += s.rho
		} else {
			z[i] -= s.rho
		}
		s.sim = append(s.sim, s.eval(z))
	}
	if len(s.sim) == n+1 {
		s.iterate()
	}

	return s.finish()
}

func (s *solver) budget() bool { return s.evals < s.o.maxEval }

func (s *solver) toX(z []float64) []float64 {
	x := make([]float64, s.n)
	for i := range x {
		x[i] = s.p.Lower[i] + s.w[i]*z[i]
	}

	return x
}

func (s *solver) eval(z []float64) point {
	s.evals++
	f, c, err := s.p.Eval(s.toX(z))
	if err != nil || math.IsNaN(f) || math.IsNaN(c) || math.IsInf(f, 0) || math.IsInf(c, 0) {
		if s.evals == 1 {
			s.startEr = err
		}
		f, c = math.Inf(1), math.Inf(1)
	}
	pt := point{z: z, f: f, c: c}
	s.pts = append(s.pts, pt)

	return pt
}

func (s *solver) merit(p point) float64 {
	if p.rejected() {
		return math.Inf(1)
	}

	return p.f + s.mu*math.Abs(p.c)
}

// better ranks feasible points by f, feasible before infeasible, and
// infeasible points by merit.
func (s *solver) better(p, q point) bool {
	pf, qf := math.Abs(p.c) <= s.o.ctol, math.Abs(q.c) <= s.o.ctol
	switch {
	case pf && qf:
		return p.f < q.f
	case pf != qf:
		return pf
	default:
		return s.merit(p) < s.merit(q)
	}
}

func (s *solver) rhoEnd(z []float64) float64 {
	x := s.toX(z)
	m := 0.0
	for i := range x {
		m = math.Max(m, math.Abs(x[i])/s.w[i])
	}

	return math.Max(s.o.xtol*m, rhoFloor)
}

// selectBest swaps the lowest-merit vertex into sim[0]; ties keep the
// lower index.
func (s *solver) selectBest() {
	bi := 0
	for k := 1; k <= s.n; k++ {
		if s.merit(s.sim[k]) < s.merit(s.sim[bi]) {
			bi = k
		}
	}
	s.sim[0], s.sim[bi] = s.sim[bi], s.sim[0]
}

func (s *solver) offsets(z0 []float64) [][]float64 {
	d := make([][]float64, s.n)
	for k := 1; k <= s.n; k++ {
		row := make([]float64, s.n)
		for i := range row {
			row[i] = s.sim[k].z[i] - z0[i]
		}
		d[k-1] = row
	}

	return d
}

// models fits the linear f and c models through the simplex.
func (s *solver) models(z0 []float64) (g, a []float64, ok bool) {
	b := s.sim[0]
	for _, p := range s.sim {
		if p.rejected() {
			return nil, nil, false
		}
	}
	d := s.offsets(z0)
	df := make([]float64, s.n)
	dc := make([]float64, s.n)
	for k := 1; k <= s.n; k++ {
		df[k-1] = s.sim[k].f - b.f
		dc[k-1] = s.sim[k].c - b.c
	}
	if g, ok = solveLinear(d, df); !ok {
		return nil, nil, false
	}
	if a, ok = solveLinear(d, dc); !ok {
		return nil, nil, false
	}

	return g, a, true
}

func (s *solver) iterate() {
	reserve := min(maxReserve, s.o.maxEval/5)
	for s.evals < s.o.maxEval-reserve {
		s.selectBest()
		b := s.sim[0]
		z0 := b.z
		if s.rho <= s.rhoEnd(z0) && math.Abs(b.c) <= s.o.ctol {
			return
		}

		g, a, ok := s.models(z0)
		if !ok {
			if !s.fixGeometry(z0) {
				z := append([]float64(nil), z0...)
				z[0] += s.rho
				s.sim[1] = s.eval(clip(z))
			}
			continue
		}
		s.lastA = a

		d := s.step(z0, b.c, g, a)
		z := clip(addScaled(z0, 1, d))
		for i := range d {
			d[i] = z[i] - z0[i]
		}
		if norm(d) < minStep*s.rho {
			if s.rho <= s.rhoEnd(z0) {
				return
			}
			s.rho = math.Max(s.rho/2, s.rhoEnd(z0))
			continue
		}

		pred := -dot(g, d) + s.mu*(math.Abs(b.c)-math.Abs(b.c+dot(a, d)))
		tr := s.eval(z)
		if tr.rejected() {
			if s.rho <= s.rhoEnd(z0) {
				return
			}
			s.rho = math.Max(s.rho/2, s.rhoEnd(z0))
			continue
		}
		ared := s.merit(b) - s.merit(tr)
		ratio := -1.0
		if pred > 0 {
			ratio = ared / pred
		}

		k := s.farthest(z)
		if ratio >= acceptRatio || s.merit(tr) < s.merit(b) {
			s.sim[k] = tr
			if ratio >= acceptRatio {
				continue
			}
		} else if dist(tr.z, z0) < dist(s.sim[k].z, z0) {
			s.sim[k] = tr
		}

		s.selectBest()
		z0 = s.sim[0].z
		if s.fixGeometry(z0) {
			continue
		}
		if s.rho <= s.rhoEnd(z0) {
			if math.Abs(s.sim[0].c) <= s.o.ctol {
				return
			}
			continue
		}
		s.rho = math.Max(s.rho/2, s.rhoEnd(z0))
	}
}

// step returns the trust-region step from z0 for the models g and a. It
// first moves toward c = 0 along a, then spends the remaining radius on
// the objective gradient projected off a. Coordinates pinned at a bound
// with the step pointing outward are frozen and the step recomputed.
func (s *solver) step(z0 []float64, c0 float64, g, a []float64) []float64 {
	n := s.n
	fixed := make([]bool, n)
	gg := make([]float64, n)
	av := make([]float64, n)
	var d []float64
	for pass := 0; pass <= n; pass++ {
		for i := 0; i < n; i++ {
			gg[i], av[i] = g[i], a[i]
			if fixed[i] {
				gg[i], av[i] = 0, 0
			}
		}
		aa := dot(av, av)
		lam := 0.0
		dc := make([]float64, n)
		if aa > 0 {
			lam = dot(gg, av) / aa
			for i := range dc {
				dc[i] = -c0 * av[i] / aa
			}
		}
		s.mu = muFactor * math.Abs(lam)

		d = make([]float64, n)
		if ndc := norm(dc); ndc >= s.rho {
			for i := range d {
				d[i] = dc[i] * s.rho / ndc
			}
		} else {
			t := make([]float64, n)
			for i := range t {
				t[i] = -(gg[i] - lam*av[i])
			}
			nt := norm(t)
			rem := math.Sqrt(s.rho*s.rho - ndc*ndc)
			for i := range d {
				d[i] = dc[i]
				if nt > 1e-300 {
					d[i] += t[i] * rem / nt
				}
			}
		}

		blocked := false
		for i := 0; i < n; i++ {
			if !fixed[i] && ((z0[i] <= 0 && d[i] < 0) || (z0[i] >= 1 && d[i] > 0)) {
				fixed[i] = true
				blocked = true
			}
		}
		if !blocked {
			break
		}
	}

	return d
}

// farthest returns the simplex index (1..n) farthest from z.
func (s *solver) farthest(z []float64) int {
	k, far := 1, -1.0
	for j := 1; j <= s.n; j++ {
		if d := dist(s.sim[j].z, z); d > far {
			k, far = j, d
		}
	}

	return k
}

// fixGeometry replaces one vertex that is rejected, too far from z0 or
// nearly dependent on the others. Far or flat vertices move ρ away from z0
// along their orthogonal complement. It reports whether a replacement was
// made.
func (s *solver) fixGeometry(z0 []float64) bool {
	d := s.offsets(z0)
	worst, score := -1, 0.0
	for k := 0; k < s.n; k++ {
		if s.sim[k+1].rejected() || norm(d[k]) > farFactor*s.rho {
			worst = k
			break
		}
		if o := norm(orthogonal(d, k)); o < flatFactor*s.rho && (worst < 0 || o < score) {
			worst, score = k, o
		}
	}
	if worst < 0 {
		return false
	}
	if !s.budget() {
		return true
	}
	if s.sim[worst+1].rejected() {
		// Back off to the opposite side at half the distance; a second
		// rejection flips back, again halving.
		z := clip(addScaled(z0, -0.5, d[worst]))
		if dist(z, z0) < 1e-12*s.rho {
			z = clip(addScaled(z0, 0.5, d[worst]))
		}
		s.sim[worst+1] = s.eval(z)

		return true
	}

	v := orthogonal(d, worst)
	nv := norm(v)
	if nv < 1e-12*s.rho {
		v = make([]float64, s.n)
		v[worst] = 1
		nv = 1
	}
	z := addScaled(z0, s.rho/nv, v)
	for _, x := range z {
		if x < 0 || x > 1 {
			z = addScaled(z0, -s.rho/nv, v)
			break
		}
	}
	s.sim[worst+1] = s.eval(clip(z))

	return true
}

func (s *solver) bestPoint() point {
	var bb point
	found := false
	for _, p := range s.pts {
		if !p.rejected() && (!found || s.better(p, bb)) {
			bb, found = p, true
		}
	}

	return bb
}

// restore runs a secant search on c along the last constraint gradient.
func (s *solver) restore(from point) {
	na := norm(s.lastA)
	if na == 0 {
		return
	}
	u := make([]float64, s.n)
	for i := range u {
		u[i] = s.lastA[i] / na
	}
	t0, c0 := 0.0, from.c
	t1 := -c0 / na
	for s.budget() {
		p := s.eval(clip(addScaled(from.z, t1, u)))
		if p.rejected() {
			return
		}
		c1 := p.c
		if math.Abs(c1) <= s.o.ctol || c1 == c0 {
			return
		}
		t0, c0, t1 = t1, c1, t1-c1*(t1-t0)/(c1-c0)
	}
}

func (s *solver) finish() (Result, error) {
	bb := s.bestPoint()
	if math.Abs(bb.c) > s.o.ctol && s.lastA != nil {
		s.restore(bb)
		bb = s.bestPoint()
	}
	res := Result{
		X:           s.toX(bb.z),
		F:           bb.f,
		C:           bb.c,
		Evaluations: s.evals,
		Feasible:    math.Abs(bb.c) <= s.o.ctol,
	}
	if !res.Feasible {
		return res, fmt.Errorf("|c| = %g after %d evaluations: %w", math.Abs(bb.c), s.evals, ErrMaxEval)
	}

	return res, nil
}

// addScaled returns z + alpha·v as a new slice.
func addScaled(z []float64, alpha float64, v []float64) []float64 {
	out := append([]float64(nil), z...)
	axpy(out, alpha, v)

	return out
}
