package interpolate

import (
	"fmt"
	"sync/atomic"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
)

// BiPCHIP is a bicubic Hermite interpolator over a uniformly spaced
// rectangular grid. Each cell is the tensor product patch built from the
// values, first partials and mixed partial at its four corners, with the
// partials estimated by NewDerivativeField.
type BiPCHIP struct {
	xs, ys searcher
	z      *mat.Dense
	field  *DerivativeField

	// Grid spacing. Only the first step of each axis is used.
	hx, hy float64

	p biParams
}

// NewBiPCHIP creates an interpolator for the values z sampled at the
// Cartesian product of xs and ys, where z.At(i, j) is the value at
// (xs[j], ys[i]). Both axes must be strictly increasing and uniformly spaced;
// only the sizes are checked here. The inputs are copied.
func NewBiPCHIP(
	xs, ys []float64, z mat.Matrix, opts ...Option,
) (*BiPCHIP, error) {
	if err := checkAxis("xs", xs); err != nil {
		return nil, err
	} else if err := checkAxis("ys", ys); err != nil {
		return nil, err
	}
	r, c := z.Dims()
	if err := checkGrid("z", xs, ys, r, c); err != nil {
		return nil, err
	}

	bi := &BiPCHIP{}
	bi.p = loadBiOptions(opts)
	bi.xs.init(xs)
	bi.ys.init(ys)
	bi.z = mat.DenseCopyOf(z)
	bi.hx, bi.hy = xs[1]-xs[0], ys[1]-ys[0]
	bi.field = newDerivativeField(bi.xs.xs, bi.ys.xs, bi.z, bi.p.threads)

	glog.V(1).Infof("Built %d x %d PCHIP derivative field.", r, c)

	return bi, nil
}

// NewUniformBiPCHIP creates an interpolator where the x axis starts at x0 and
// has nx points separated by dx, and likewise for y.
func NewUniformBiPCHIP(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	z mat.Matrix, opts ...Option,
) (*BiPCHIP, error) {
	if nx < 2 || ny < 2 {
		return nil, shapeErrorf("nx = %d and ny = %d, but both must be >= 2",
			nx, ny)
	}
	var xs, ys searcher
	xs.unifInit(x0, dx, nx)
	ys.unifInit(y0, dy, ny)
	return NewBiPCHIP(xs.xs, ys.xs, z, opts...)
}

// Eval returns the interpolated value at (x, y). Points outside the grid are
// extrapolated with the cubic patch of the nearest boundary cell; see
// InDomain.
func (bi *BiPCHIP) Eval(x, y float64) float64 {
	ix, iy := bi.xs.search(x), bi.ys.search(y)

	tx := (x - bi.xs.val(ix)) / bi.hx
	ty := (y - bi.ys.val(iy)) / bi.hy
	xb11, xb21, xb12, xb22 := hermiteBasis(tx, bi.hx)
	yb11, yb21, yb12, yb22 := hermiteBasis(ty, bi.hy)

	v := 0.0
	v = bi.corner(v, iy, ix, xb11, xb21, yb11, yb21)
	v = bi.corner(v, iy+1, ix, xb11, xb21, yb12, yb22)
	v = bi.corner(v, iy, ix+1, xb12, xb22, yb11, yb21)
	v = bi.corner(v, iy+1, ix+1, xb12, xb22, yb12, yb22)
	return v
}

// corner adds the contribution of the node at row iy and column ix to acc.
// xv and yv are the value weights of the node along each axis, xd and yd the
// derivative weights.
func (bi *BiPCHIP) corner(
	acc float64, iy, ix int, xv, xd, yv, yd float64,
) float64 {
	acc += xv * yv * bi.z.At(iy, ix)
	acc += xd * yv * bi.field.Dx.At(iy, ix)
	acc += xv * yd * bi.field.Dy.At(iy, ix)
	acc += xd * yd * bi.field.Dxy.At(iy, ix)
	return acc
}

// EvalAll evaluates the interpolator at the points (xs[i], ys[i]). If an
// output array is given, the output is written to that array (the array is
// still returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (bi *BiPCHIP) EvalAll(xs, ys []float64, out ...[]float64) []float64 {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf("len(xs) = %d, but len(ys) = %d", len(xs), len(ys)))
	}
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		out[0][i] = bi.Eval(xs[i], ys[i])
	}
	return out[0]
}

// EvalGrid evaluates the interpolator at every element of the query grids qx
// and qy. The grids are broadcast against one another: each dimension must
// either match or be 1. The result has the broadcast shape.
//
// An error wrapping ErrShapeMismatch is returned, and nothing is evaluated,
// if the query grids cannot be broadcast.
func (bi *BiPCHIP) EvalGrid(qx, qy mat.Matrix) (*mat.Dense, error) {
	out, outside, err := bi.evalGrid(qx, qy)
	if err != nil {
		return nil, err
	}
	r, c := out.Dims()
	bi.warnOutside(outside, r*c)
	return out, nil
}

// evalGrid does the work of EvalGrid and also returns the number of query
// points which lie outside the domain.
func (bi *BiPCHIP) evalGrid(qx, qy mat.Matrix) (*mat.Dense, int, error) {
	r, c, err := broadcastDims(qx, qy)
	if err != nil {
		return nil, 0, err
	}

	bx, by := newBroadcaster(qx), newBroadcaster(qy)
	out := mat.NewDense(r, c, nil)
	var outside int64

	parallelRange(0, r, bi.p.threads, func(i int) {
		row := out.RawRowView(i)
		n := int64(0)
		for j := range row {
			x, y := bx.at(i, j), by.at(i, j)
			row[j] = bi.Eval(x, y)
			if !bi.InDomain(x, y) {
				n++
			}
		}
		if n > 0 {
			atomic.AddInt64(&outside, n)
		}
	})

	return out, int(outside), nil
}

// warnOutside logs a warning if any of total query points were outside the
// domain and warnings are enabled. It reports whether anything was logged.
func (bi *BiPCHIP) warnOutside(outside, total int) bool {
	if !bi.p.warn || outside == 0 {
		return false
	}
	glog.Warningf(
		"%d of %d query points lie outside [%g, %g] x [%g, %g] and "+
			"were extrapolated.", outside, total,
		bi.xs.val(0), bi.xs.val(bi.xs.len()-1),
		bi.ys.val(0), bi.ys.val(bi.ys.len()-1),
	)
	return true
}

// InDomain reports whether (x, y) lies inside the sampled grid, boundaries
// included. Values at points outside the domain are extrapolations.
func (bi *BiPCHIP) InDomain(x, y float64) bool {
	return x >= bi.xs.val(0) && x <= bi.xs.val(bi.xs.len()-1) &&
		y >= bi.ys.val(0) && y <= bi.ys.val(bi.ys.len()-1)
}

// Field returns a copy of the derivative field used by the interpolator.
func (bi *BiPCHIP) Field() DerivativeField {
	return DerivativeField{
		Dx:  mat.DenseCopyOf(bi.field.Dx),
		Dy:  mat.DenseCopyOf(bi.field.Dy),
		Dxy: mat.DenseCopyOf(bi.field.Dxy),
	}
}

// XAxis returns a copy of the x axis.
func (bi *BiPCHIP) XAxis() []float64 {
	return append([]float64(nil), bi.xs.xs...)
}

// YAxis returns a copy of the y axis.
func (bi *BiPCHIP) YAxis() []float64 {
	return append([]float64(nil), bi.ys.xs...)
}

// PCHIP2D interpolates the values z, sampled at the Cartesian product of
// xAxis and yAxis, to the query points (qx, qy). It is a convenience wrapper
// around NewBiPCHIP and EvalGrid, and all shapes are checked before any work
// is done.
func PCHIP2D(
	xAxis, yAxis []float64, z, qx, qy mat.Matrix, opts ...Option,
) (*mat.Dense, error) {
	if _, _, err := broadcastDims(qx, qy); err != nil {
		return nil, err
	}
	bi, err := NewBiPCHIP(xAxis, yAxis, z, opts...)
	if err != nil {
		return nil, err
	}
	return bi.EvalGrid(qx, qy)
}

// broadcastDims returns the shape that a and b broadcast to.
func broadcastDims(a, b mat.Matrix) (r, c int, err error) {
	ra, ca := a.Dims()
	rb, cb := b.Dims()

	r, ok := broadcastLen(ra, rb)
	if ok {
		c, ok = broadcastLen(ca, cb)
	}
	if !ok {
		return 0, 0, shapeErrorf(
			"query grids are %d x %d and %d x %d", ra, ca, rb, cb,
		)
	}
	return r, c, nil
}

func broadcastLen(a, b int) (int, bool) {
	switch {
	case a == b:
		return a, true
	case a == 1:
		return b, true
	case b == 1:
		return a, true
	}
	return 0, false
}

// broadcaster reads a matrix as if it were stretched along its unit
// dimensions.
type broadcaster struct {
	m                  mat.Matrix
	fixedRow, fixedCol bool
}

func newBroadcaster(m mat.Matrix) broadcaster {
	r, c := m.Dims()
	return broadcaster{m, r == 1, c == 1}
}

func (b broadcaster) at(i, j int) float64 {
	if b.fixedRow {
		i = 0
	}
	if b.fixedCol {
		j = 0
	}
	return b.m.At(i, j)
}
