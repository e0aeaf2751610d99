// SPDX-License-Identifier: MIT

package surrogate

import (
	"fmt"
	"math"
	"sync"
)

// Interpolator is a k-nearest-neighbour regressor over an Inputs matrix.
type Interpolator struct {
	inputs  *Inputs
	shared  bool // inputs borrowed from another interpolator
	outputs []float64
	scaling []float64
	opts    Options
	scratch sync.Pool // *scratch sized to the current row count
}

// Neighbors is the result of a nearest-row query: Index[i] is a row of the
// Inputs the query ran against and Distance[i] its scaled distance.
type Neighbors struct {
	Index    []int
	Distance []float64
	inputs   *Inputs
}

type scratch struct {
	dist []float64
	idx  []int
}

// New creates an interpolator with its own dim-column Inputs of the given capacity.
func New(dim, capacity int, opts ...Option) (*Interpolator, error) {
	in, err := NewInputs(dim, capacity)
	if err != nil {
		return nil, err
	}

	return newInterpolator(in, false, opts)
}

// NewShared creates an interpolator that reads an existing Inputs matrix.
// The shared interpolator never appends; its outputs are attached with
// SetOutputs and must match the row count of inputs at that moment.
func NewShared(in *Inputs, opts ...Option) (*Interpolator, error) {
	if in == nil {
		return nil, fmt.Errorf("NewShared: nil inputs: %w", ErrDimensionMismatch)
	}

	return newInterpolator(in, true, opts)
}

func newInterpolator(in *Inputs, shared bool, opts []Option) (*Interpolator, error) {
	o := gatherOptions(opts...)
	scaling := o.scaling
	if scaling == nil {
		scaling = make([]float64, in.dim)
		for j := range scaling {
			scaling[j] = 1
		}
	}
	if len(scaling) != in.dim {
		return nil, fmt.Errorf("scaling has %d factors for %d dimensions: %w",
			len(scaling), in.dim, ErrDimensionMismatch)
	}

	return &Interpolator{inputs: in, shared: shared, scaling: scaling, opts: o}, nil
}

// Inputs returns the underlying input matrix, e.g. to share it via NewShared.
func (ip *Interpolator) Inputs() *Inputs { return ip.inputs }

// Len returns the number of rows with an output.
func (ip *Interpolator) Len() int { return len(ip.outputs) }

// Dim returns the input dimensionality.
func (ip *Interpolator) Dim() int { return ip.inputs.dim }

// Capacity returns the row capacity of the underlying inputs.
func (ip *Interpolator) Capacity() int { return ip.inputs.capacity }

// MeanSize returns the configured k (before clamping to Len).
func (ip *Interpolator) MeanSize() int { return ip.opts.meanSize }

// ScalingFactors returns a copy of the per-dimension scaling factors.
func (ip *Interpolator) ScalingFactors() []float64 {
	return append([]float64(nil), ip.scaling...)
}

// Outputs returns the stored outputs without copying.
func (ip *Interpolator) Outputs() []float64 { return ip.outputs }

// AddTrainingData appends rows and their outputs.
// Either all rows are stored or none: a capacity overflow, a ragged row or
// a non-finite value leaves the interpolator unchanged.
func (ip *Interpolator) AddTrainingData(inputs [][]float64, outputs []float64) error {
	if ip.shared {
		return ErrSharedInputs
	}
	if len(inputs) != len(outputs) {
		return fmt.Errorf("AddTrainingData: %d rows, %d outputs: %w",
			len(inputs), len(outputs), ErrDimensionMismatch)
	}
	for i, y := range outputs {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return fmt.Errorf("AddTrainingData: output %d: %w", i, ErrNaNInf)
		}
	}
	if err := ip.inputs.Append(inputs); err != nil {
		return fmt.Errorf("AddTrainingData: %w", err)
	}
	ip.outputs = append(ip.outputs, outputs...)

	return nil
}

// SetOutputs attaches outputs to a shared interpolator; one per input row.
func (ip *Interpolator) SetOutputs(outputs []float64) error {
	if !ip.shared {
		return fmt.Errorf("SetOutputs on owning interpolator: %w", ErrDimensionMismatch)
	}
	if len(outputs) != ip.inputs.Len() {
		return fmt.Errorf("SetOutputs: %d outputs for %d rows: %w",
			len(outputs), ip.inputs.Len(), ErrDimensionMismatch)
	}
	for i, y := range outputs {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return fmt.Errorf("SetOutputs: output %d: %w", i, ErrNaNInf)
		}
	}
	ip.outputs = append([]float64(nil), outputs...)

	return nil
}

// Evaluate returns the arithmetic mean of the outputs of the k nearest rows.
func (ip *Interpolator) Evaluate(point []float64) (float64, error) {
	nb, release, err := ip.query(point)
	if err != nil {
		return 0, err
	}
	defer release()

	return ip.mean(nb), nil
}

// EvaluateWeighted returns the inverse-distance weighted mean of the k
// nearest outputs. A row at distance exactly zero is returned as is.
func (ip *Interpolator) EvaluateWeighted(point []float64) (float64, error) {
	nb, release, err := ip.query(point)
	if err != nil {
		return 0, err
	}
	defer release()

	return ip.weighted(nb), nil
}

// Query returns the k nearest rows to point. The result owns its slices and
// can be applied to every interpolator reading the same Inputs.
func (ip *Interpolator) Query(point []float64) (Neighbors, error) {
	nb, release, err := ip.query(point)
	if err != nil {
		return Neighbors{}, err
	}
	defer release()

	return Neighbors{
		Index:    append([]int(nil), nb.Index...),
		Distance: append([]float64(nil), nb.Distance...),
		inputs:   ip.inputs,
	}, nil
}

// Mean applies an unweighted average over precomputed neighbours.
func (ip *Interpolator) Mean(nb Neighbors) (float64, error) {
	if err := ip.checkNeighbors(nb); err != nil {
		return 0, err
	}

	return ip.mean(nb), nil
}

// Weighted applies inverse-distance weighting over precomputed neighbours.
func (ip *Interpolator) Weighted(nb Neighbors) (float64, error) {
	if err := ip.checkNeighbors(nb); err != nil {
		return 0, err
	}

	return ip.weighted(nb), nil
}

func (ip *Interpolator) checkNeighbors(nb Neighbors) error {
	if nb.inputs != ip.inputs {
		return ErrForeignNeighbors
	}
	for _, i := range nb.Index {
		if i >= len(ip.outputs) {
			return fmt.Errorf("neighbour row %d: %w", i, ErrOutOfRange)
		}
	}

	return nil
}

func (ip *Interpolator) mean(nb Neighbors) float64 {
	var sum float64
	for _, i := range nb.Index {
		sum += ip.outputs[i]
	}

	return sum / float64(len(nb.Index))
}

func (ip *Interpolator) weighted(nb Neighbors) float64 {
	var num, den float64
	for n, i := range nb.Index {
		d := nb.Distance[n]
		if d == 0 {
			return ip.outputs[i]
		}
		num += ip.outputs[i] / d
		den += 1 / d
	}

	return num / den
}

// query computes distances into pooled scratch and selects the k nearest.
// The returned Neighbors alias the scratch until release is called.
func (ip *Interpolator) query(point []float64) (Neighbors, func(), error) {
	n := len(ip.outputs)
	if n == 0 {
		return Neighbors{}, nil, ErrEmpty
	}
	if len(point) != ip.inputs.dim {
		return Neighbors{}, nil, fmt.Errorf("query of length %d for %d dimensions: %w",
			len(point), ip.inputs.dim, ErrDimensionMismatch)
	}
	p := make([]float64, len(point))
	for j, v := range point {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Neighbors{}, nil, fmt.Errorf("query component %d: %w", j, ErrNaNInf)
		}
		p[j] = v
	}

	s := ip.acquire(n)
	ip.distances(p, s.dist)
	for i := range s.idx {
		s.idx[i] = i
	}
	k := ip.opts.meanSize
	if k > n {
		k = n
	}
	selectK(s.idx, s.dist, k)

	// gather the k selected distances in index order of idx[:k]
	dk := s.dist[n : n+k]
	for i := 0; i < k; i++ {
		dk[i] = s.dist[s.idx[i]]
	}

	nb := Neighbors{Index: s.idx[:k], Distance: dk, inputs: ip.inputs}

	return nb, func() { ip.scratch.Put(s) }, nil
}

// acquire returns scratch with len(dist) == n + k headroom and len(idx) == n.
func (ip *Interpolator) acquire(n int) *scratch {
	need := n + ip.opts.meanSize
	if v := ip.scratch.Get(); v != nil {
		s := v.(*scratch)
		if cap(s.dist) >= need && cap(s.idx) >= n {
			s.dist = s.dist[:need]
			s.idx = s.idx[:n]
			return s
		}
	}

	return &scratch{dist: make([]float64, need), idx: make([]int, n)}
}

// scale is the denominator of dimension j for query p. A zero component is
// replaced by the nudge so the ratio stays finite; the difference itself
// always uses the raw component.
func (ip *Interpolator) scale(p []float64, j int) float64 {
	v := p[j]
	if v == 0 {
		v = ip.opts.zeroNudge
	}

	return v * ip.scaling[j]
}

// distances fills dist[:n] with the scaled relative distance of every row
// to p. Common dimensionalities get an unrolled kernel.
func (ip *Interpolator) distances(p []float64, dist []float64) {
	n := len(ip.outputs)
	cols := ip.inputs.cols
	switch ip.inputs.dim {
	case 1:
		c0, w0 := cols[0][:n], ip.scale(p, 0)
		for i := 0; i < n; i++ {
			d0 := (c0[i] - p[0]) / w0
			dist[i] = math.Sqrt(d0 * d0)
		}
	case 2:
		c0, w0 := cols[0][:n], ip.scale(p, 0)
		c1, w1 := cols[1][:n], ip.scale(p, 1)
		for i := 0; i < n; i++ {
			d0 := (c0[i] - p[0]) / w0
			d1 := (c1[i] - p[1]) / w1
			dist[i] = math.Sqrt(d0*d0 + d1*d1)
		}
	case 3:
		c0, w0 := cols[0][:n], ip.scale(p, 0)
		c1, w1 := cols[1][:n], ip.scale(p, 1)
		c2, w2 := cols[2][:n], ip.scale(p, 2)
		for i := 0; i < n; i++ {
			d0 := (c0[i] - p[0]) / w0
			d1 := (c1[i] - p[1]) / w1
			d2 := (c2[i] - p[2]) / w2
			dist[i] = math.Sqrt(d0*d0 + d1*d1 + d2*d2)
		}
	default:
		for i := 0; i < n; i++ {
			dist[i] = 0
		}
		for j, col := range cols {
			w := ip.scale(p, j)
			for i := 0; i < n; i++ {
				d := (col[i] - p[j]) / w
				dist[i] += d * d
			}
		}
		for i := 0; i < n; i++ {
			dist[i] = math.Sqrt(dist[i])
		}
	}
}
