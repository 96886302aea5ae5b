package calc

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoConvergence is returned by Newton when the iteration fails to reach
// the requested tolerance.
var ErrNoConvergence = errors.New("calc: Newton iteration did not converge")

type newtonParams struct {
	tol     float64
	maxIter int
	lo, hi  float64
}

// NewtonOption configures a call to Newton.
type NewtonOption func(*newtonParams)

// Tol sets the step size below which Newton considers itself converged. The
// default is 1e-10.
func Tol(tol float64) NewtonOption {
	return func(p *newtonParams) { p.tol = tol }
}

// MaxIter sets the maximum number of Newton steps. The default is 100.
func MaxIter(n int) NewtonOption {
	return func(p *newtonParams) { p.maxIter = n }
}

// Bounds restricts the iterates to [lo, hi]. Steps which leave the interval
// are clamped to its edges.
func Bounds(lo, hi float64) NewtonOption {
	return func(p *newtonParams) { p.lo, p.hi = lo, hi }
}

func (p *newtonParams) loadOptions(opts []NewtonOption) {
	for _, opt := range opts {
		opt(p)
	}
}

// Newton finds a root of f starting from x0 using Newton's method with the
// derivative df. It stops once a step is smaller than the tolerance.
func Newton(
	f, df func(float64) float64, x0 float64, opts ...NewtonOption,
) (float64, error) {
	p := &newtonParams{
		tol: 1e-10, maxIter: 100, lo: math.Inf(-1), hi: math.Inf(+1),
	}
	p.loadOptions(opts)
	if p.lo > p.hi {
		panic(fmt.Sprintf("Newton given bounds [%g, %g].", p.lo, p.hi))
	}

	x := clamp(x0, p.lo, p.hi)
	for i := 0; i < p.maxIter; i++ {
		d := df(x)
		if d == 0 || math.IsNaN(d) {
			return x, fmt.Errorf("%w: derivative is %g at x = %g",
				ErrNoConvergence, d, x)
		}

		next := clamp(x-f(x)/d, p.lo, p.hi)
		if math.Abs(next-x) < p.tol {
			return next, nil
		}
		x = next
	}

	return x, fmt.Errorf("%w: %d steps taken, last x = %g",
		ErrNoConvergence, p.maxIter, x)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	} else if x > hi {
		return hi
	}
	return x
}
