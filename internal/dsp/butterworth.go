package dsp

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrSequenceTooShort indicates the input is shorter than the filter's edge
// padding requirement, so zero-phase filtering would be numerically unstable.
var ErrSequenceTooShort = errors.New("sequence too short for zero-phase filtering")

// Butterworth designs a digital low-pass Butterworth filter of the given order.
// The cutoff is normalized to the Nyquist frequency (0 < cutoff < 1). It
// returns transfer function coefficients b (numerator) and a (denominator),
// with a[0] == 1.
func Butterworth(order int, cutoff float64) (b, a []float64, err error) {
	if order < 1 {
		return nil, nil, fmt.Errorf("filter order must be at least 1, got %d", order)
	}

	if cutoff <= 0 || cutoff >= 1 {
		return nil, nil, fmt.Errorf("cutoff must be between 0 and 1 (exclusive), got %f", cutoff)
	}

	// analog prototype poles on the unit circle, left half plane
	poles := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		poles[k] = cmplx.Exp(complex(0, theta))
	}

	// frequency pre-warp for the bilinear transform (fs = 2)
	const fs = 2.0
	warped := 2 * fs * math.Tan(math.Pi*cutoff/fs)

	gain := complex(math.Pow(warped, float64(order)), 0)
	for k := range poles {
		poles[k] *= complex(warped, 0)
	}

	// bilinear transform: s -> 2*fs*(z-1)/(z+1)
	fs2 := complex(2*fs, 0)
	zPoles := make([]complex128, order)
	for k, p := range poles {
		zPoles[k] = (fs2 + p) / (fs2 - p)
		gain /= fs2 - p
	}

	// all zeros map to z = -1
	zZeros := make([]complex128, order)
	for k := range zZeros {
		zZeros[k] = -1
	}

	b = realPoly(zZeros)
	a = realPoly(zPoles)
	k := real(gain)
	for i := range b {
		b[i] *= k
	}

	return b, a, nil
}

// realPoly expands a polynomial from its roots and returns the real
// coefficient slice, highest degree first, monic.
func realPoly(roots []complex128) []float64 {
	coeffs := make([]complex128, 1, len(roots)+1)
	coeffs[0] = 1
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}

	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c)
	}
	return out
}

// lfilter applies the IIR filter described by b, a to x with initial state zi,
// using the transposed direct-form II structure. It returns the filtered
// output; the state slice is modified in place.
func lfilter(b, a, x, zi []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	bp := make([]float64, n)
	copy(bp, b)
	ap := make([]float64, n)
	copy(ap, a)

	y := make([]float64, len(x))
	for m, xv := range x {
		yv := bp[0]*xv + zi[0]
		for i := 0; i < n-2; i++ {
			zi[i] = bp[i+1]*xv + zi[i+1] - ap[i+1]*yv
		}
		zi[n-2] = bp[n-1]*xv - ap[n-1]*yv
		y[m] = yv
	}

	return y
}

// lfilterZi computes the steady-state initial filter delay values so that a
// step input produces a step output from the first sample.
func lfilterZi(b, a []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	bp := make([]float64, n)
	copy(bp, b)
	ap := make([]float64, n)
	copy(ap, a)

	// Solve (I - A) zi = B where A is the transposed companion matrix of a
	// and B[i] = b[i+1] - a[i+1]*b[0].
	dim := n - 1
	m := make([][]float64, dim)
	rhs := make([]float64, dim)
	for i := 0; i < dim; i++ {
		m[i] = make([]float64, dim)
		m[i][0] = ap[i+1]
		rhs[i] = bp[i+1] - ap[i+1]*bp[0]
	}
	for i := 0; i < dim; i++ {
		m[i][i] += 1
		if i+1 < dim {
			m[i][i+1] -= 1
		}
	}

	return solveLinear(m, rhs)
}

// solveLinear solves a small dense linear system with partial pivoting.
func solveLinear(m [][]float64, rhs []float64) []float64 {
	n := len(rhs)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		m[col], m[pivot] = m[pivot], m[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		for row := col + 1; row < n; row++ {
			if m[col][col] == 0 {
				continue
			}
			f := m[row][col] / m[col][col]
			for k := col; k < n; k++ {
				m[row][k] -= f * m[col][k]
			}
			rhs[row] -= f * rhs[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := rhs[row]
		for k := row + 1; k < n; k++ {
			sum -= m[row][k] * x[k]
		}
		if m[row][row] != 0 {
			x[row] = sum / m[row][row]
		}
	}
	return x
}

// FiltFilt applies the filter forward and backward so phase distortion
// cancels, preserving event timing in the output. The input is extended at
// both ends by an odd reflection of 3*(filter length) samples before
// filtering. Returns ErrSequenceTooShort when the input does not cover the
// required padding.
func FiltFilt(b, a, x []float64) ([]float64, error) {
	ntaps := len(a)
	if len(b) > ntaps {
		ntaps = len(b)
	}
	edge := 3 * ntaps

	if len(x) <= edge {
		return nil, fmt.Errorf("%w: need more than %d samples, got %d", ErrSequenceTooShort, edge, len(x))
	}

	// odd extension at both ends
	ext := make([]float64, 0, len(x)+2*edge)
	for i := edge; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := len(x) - 2; i >= len(x)-1-edge; i-- {
		ext = append(ext, 2*x[len(x)-1]-x[i])
	}

	zi := lfilterZi(b, a)

	state := make([]float64, len(zi))
	for i := range state {
		state[i] = zi[i] * ext[0]
	}
	y := lfilter(b, a, ext, state)

	reverse(y)
	for i := range state {
		state[i] = zi[i] * y[0]
	}
	y = lfilter(b, a, y, state)
	reverse(y)

	return y[edge : len(y)-edge], nil
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
