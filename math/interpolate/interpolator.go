/*package interpolate implements monotone piecewise cubic Hermite (PCHIP)
interpolators in one and two dimensions.
*/
package interpolate

// Interpolator is a 1D interpolator. Interpolators are immutable after
// construction and may be shared between goroutines.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// EvalAll evaluates a sequence of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &PCHIP{}
)

// BiInterpolator is a 2D interpolator. Interpolators are immutable after
// construction and may be shared between goroutines.
type BiInterpolator interface {
	// Eval evaluates the interpolator at a point.
	Eval(x, y float64) float64
	// EvalAll evaluates a sequence of points and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs, ys []float64, out ...[]float64) []float64
}

var (
	_ BiInterpolator = &BiPCHIP{}
)
