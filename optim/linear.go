// SPDX-License-Identifier: MIT

package optim

import "math"

// pivotTol is the singularity threshold for solveLinear.
const pivotTol = 1e-14

// solveLinear solves A·x = b by Gaussian elimination with partial pivoting
// on a row-major n×n copy of A. ok is false when a pivot falls below
// pivotTol.
func solveLinear(a [][]float64, b []float64) (x []float64, ok bool) {
	n := len(b)
	m := make([]float64, n*(n+1)) // augmented, row stride n+1
	stride := n + 1
	for i := 0; i < n; i++ {
		copy(m[i*stride:], a[i])
		m[i*stride+n] = b[i]
	}

	var i, j, k, p int
	for k = 0; k < n; k++ {
		p = k
		for i = k + 1; i < n; i++ {
			if math.Abs(m[i*stride+k]) > math.Abs(m[p*stride+k]) {
				p = i
			}
		}
		if math.Abs(m[p*stride+k]) < pivotTol {
			return nil, false
		}
		if p != k {
			for j = k; j <= n; j++ {
				m[k*stride+j], m[p*stride+j] = m[p*stride+j], m[k*stride+j]
			}
		}
		for i = k + 1; i < n; i++ {
			f := m[i*stride+k] / m[k*stride+k]
			for j = k; j <= n; j++ {
				m[i*stride+j] -= f * m[k*stride+j]
			}
		}
	}

	x = make([]float64, n)
	for i = n - 1; i >= 0; i-- {
		sum := m[i*stride+n]
		for j = i + 1; j < n; j++ {
			sum -= m[i*stride+j] * x[j]
		}
		x[i] = sum / m[i*stride+i]
	}

	return x, true
}

// orthogonal returns the component of rows[k] orthogonal to the span of
// the other rows (modified Gram-Schmidt).
func orthogonal(rows [][]float64, k int) []float64 {
	var basis [][]float64
	for i, r := range rows {
		if i == k {
			continue
		}
		v := append([]float64(nil), r...)
		for _, e := range basis {
			axpy(v, -dot(v, e), e)
		}
		if nv := norm(v); nv > 1e-300 {
			for j := range v {
				v[j] /= nv
			}
			basis = append(basis, v)
		}
	}
	v := append([]float64(nil), rows[k]...)
	for _, e := range basis {
		axpy(v, -dot(v, e), e)
	}

	return v
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

// norm is the Euclidean length, scaled to avoid overflow like math.Hypot.
func norm(v []float64) float64 {
	var scale, ssq float64 = 0, 1
	for _, x := range v {
		if x == 0 {
			continue
		}
		ax := math.Abs(x)
		if math.IsInf(ax, 0) {
			return math.Inf(1)
		}
		if scale < ax {
			ssq = 1 + ssq*(scale/ax)*(scale/ax)
			scale = ax
		} else {
			ssq += (ax / scale) * (ax / scale)
		}
	}

	return scale * math.Sqrt(ssq)
}

func dist(a, b []float64) float64 {
	d := make([]float64, len(a))
	for i := range a {
		d[i] = a[i] - b[i]
	}

	return norm(d)
}

// axpy computes y += alpha·x in place.
func axpy(y []float64, alpha float64, x []float64) {
	for i := range y {
		y[i] += alpha * x[i]
	}
}

func clip(z []float64) []float64 {
	for i, v := range z {
		z[i] = math.Min(math.Max(v, 0), 1)
	}

	return z
}
