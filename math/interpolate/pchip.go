package interpolate

import (
	"fmt"
	"math"
)

type derivParams struct{ out []float64 }

// DerivOption configures a call to PCHIPDeriv.
type DerivOption func(*derivParams)

// Out supplies a call to PCHIPDeriv with a slice to write derivatives to.
func Out(out []float64) DerivOption {
	return func(p *derivParams) { p.out = out }
}

func (p *derivParams) loadOptions(opts []DerivOption) {
	for _, opt := range opts {
		opt(p)
	}
}

// PCHIPDeriv estimates the derivative of a sequence of (x, y) points at each
// point so that the piecewise cubic Hermite curve through them is monotone
// wherever the data is. The points need not be uniformly spaced, but xs must
// be strictly increasing and contain at least two points.
//
// Interior derivatives are the weighted harmonic mean of the neighbouring
// secant slopes, or zero at local extrema. End derivatives use a one-sided
// three-point formula limited so that it never changes sign and never
// exceeds three times the adjacent secant slope.
func PCHIPDeriv(xs, ys []float64, opts ...DerivOption) []float64 {
	n := len(xs)

	p := new(derivParams)
	p.loadOptions(opts)
	out := p.out
	if out == nil {
		out = make([]float64, n)
	}

	if len(ys) != n {
		panic(fmt.Sprintf("len(ys) = %d, but len(xs) = %d", len(ys), n))
	} else if len(out) != n {
		panic(fmt.Sprintf("len(out) = %d, but len(xs) = %d", len(out), n))
	} else if n < 2 {
		panic(fmt.Sprintf("PCHIPDeriv given %d points.", n))
	}

	if n == 2 {
		m := (ys[1] - ys[0]) / (xs[1] - xs[0])
		out[0], out[1] = m, m
		return out
	}

	// Secant slopes. The previous and current slopes are all that is ever
	// needed, so nothing is allocated here.
	hPrev := xs[1] - xs[0]
	mPrev := (ys[1] - ys[0]) / hPrev
	for k := 1; k < n-1; k++ {
		h := xs[k+1] - xs[k]
		m := (ys[k+1] - ys[k]) / h

		if sign(m) != sign(mPrev) || m == 0 || mPrev == 0 {
			out[k] = 0
		} else {
			w1, w2 := 2*h+hPrev, h+2*hPrev
			whmean := (w1/mPrev + w2/m) / (w1 + w2)
			out[k] = 1 / whmean
		}

		hPrev, mPrev = h, m
	}

	h0, h1 := xs[1]-xs[0], xs[2]-xs[1]
	m0, m1 := (ys[1]-ys[0])/h0, (ys[2]-ys[1])/h1
	out[0] = pchipEnd(h0, h1, m0, m1)

	h0, h1 = xs[n-1]-xs[n-2], xs[n-2]-xs[n-3]
	m0, m1 = (ys[n-1]-ys[n-2])/h0, (ys[n-2]-ys[n-3])/h1
	out[n-1] = pchipEnd(h0, h1, m0, m1)

	return out
}

// pchipEnd computes the derivative at an end point from the two nearest
// secant slopes, m0 being the one touching the end point.
func pchipEnd(h0, h1, m0, m1 float64) float64 {
	d := ((2*h0+h1)*m0 - h0*m1) / (h0 + h1)
	if sign(d) != sign(m0) {
		return 0
	} else if sign(m0) != sign(m1) && math.Abs(d) > 3*math.Abs(m0) {
		return 3 * m0
	}
	return d
}

func sign(x float64) int {
	switch {
	case x > 0:
		return +1
	case x < 0:
		return -1
	}
	return 0
}

// hermiteBasis returns the four cubic Hermite basis functions at t for a
// segment of width h. b11 and b12 weight the left and right values, b21 and
// b22 weight the left and right derivatives.
func hermiteBasis(t, h float64) (b11, b21, b12, b22 float64) {
	t2 := t * t
	t3 := t * t2
	b11 = 2*t3 - 3*t2 + 1
	b21 = h * (t3 - 2*t2 + t)
	b12 = -2*t3 + 3*t2
	b22 = h * (t3 - t2)
	return b11, b21, b12, b22
}

// PCHIP is a 1D monotone piecewise cubic Hermite interpolator.
type PCHIP struct {
	xs     searcher
	ys, ds []float64
}

// NewPCHIP creates an interpolator through the points (xs[i], ys[i]). xs must
// be strictly increasing but need not be uniformly spaced. Both slices are
// copied.
func NewPCHIP(xs, ys []float64) (*PCHIP, error) {
	if err := checkAxis("xs", xs); err != nil {
		return nil, err
	} else if len(ys) != len(xs) {
		return nil, shapeErrorf("len(ys) = %d, but len(xs) = %d",
			len(ys), len(xs))
	}
	for i := 0; i < len(xs)-1; i++ {
		if !(xs[i+1] > xs[i]) {
			return nil, fmt.Errorf("%w: xs[%d] = %g, xs[%d] = %g",
				ErrNotIncreasing, i, xs[i], i+1, xs[i+1])
		}
	}

	sp := &PCHIP{}
	sp.xs.init(xs)
	sp.ys = make([]float64, len(ys))
	copy(sp.ys, ys)
	sp.ds = PCHIPDeriv(sp.xs.xs, sp.ys)
	return sp, nil
}

// Eval returns the interpolated value at x. Points outside the table are
// extrapolated with the cubic of the nearest end segment.
func (sp *PCHIP) Eval(x float64) float64 {
	i := sp.xs.search(x)
	x1, x2 := sp.xs.val(i), sp.xs.val(i+1)
	h := x2 - x1
	b11, b21, b12, b22 := hermiteBasis((x-x1)/h, h)
	return b11*sp.ys[i] + b21*sp.ds[i] + b12*sp.ys[i+1] + b22*sp.ds[i+1]
}

// Diff returns the first derivative of the interpolant at x.
func (sp *PCHIP) Diff(x float64) float64 {
	i := sp.xs.search(x)
	x1, x2 := sp.xs.val(i), sp.xs.val(i+1)
	h := x2 - x1
	t := (x - x1) / h
	t2 := t * t

	// Derivatives of the basis functions with respect to x.
	db11 := (6*t2 - 6*t) / h
	db21 := 3*t2 - 4*t + 1
	db12 := (-6*t2 + 6*t) / h
	db22 := 3*t2 - 2*t
	return db11*sp.ys[i] + db21*sp.ds[i] + db12*sp.ys[i+1] + db22*sp.ds[i+1]
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (sp *PCHIP) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = sp.Eval(x)
	}
	return out[0]
}

// Min returns the smallest abscissa in the table.
func (sp *PCHIP) Min() float64 { return sp.xs.val(0) }

// Max returns the largest abscissa in the table.
func (sp *PCHIP) Max() float64 { return sp.xs.val(sp.xs.len() - 1) }
