package interpolate

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// sampleGrid evaluates f at every node of the grid spanned by xs and ys.
func sampleGrid(xs, ys []float64, f func(x, y float64) float64) *mat.Dense {
	z := mat.NewDense(len(ys), len(xs), nil)
	for i, y := range ys {
		for j, x := range xs {
			z.Set(i, j, f(x, y))
		}
	}
	return z
}

func mixed(x, y float64) float64 { return x*y + math.Sin(x) + 0.5*y*y*y }

var (
	mixedXs = []float64{0, 0.5, 1, 1.5, 2}
	mixedYs = []float64{1, 2, 3, 4}
)

func TestBiPCHIPNodes(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	bi, err := NewBiPCHIP(mixedXs, mixedYs, z)
	require.NoError(t, err)

	for i, y := range mixedYs {
		for j, x := range mixedXs {
			assert.InDelta(t, z.At(i, j), bi.Eval(x, y), 1e-12,
				"node (%g, %g)", x, y)
		}
	}
}

func TestBiPCHIPReference(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	bi, err := NewBiPCHIP(mixedXs, mixedYs, z)
	require.NoError(t, err)

	table := []struct{ x, y, z float64 }{
		{0.25, 1.5, 2.296557277735502},
		{1.1, 2.7, 13.781375274360647},
		{2, 4, 40.90929742682568},
		{0.75, 3.2, 19.385414412693326},
		// Extrapolated from the boundary cells.
		{2.5, 4.5, 55.9294123445016},
		{-0.5, 0.5, 0.6077750916025018},
	}
	for _, test := range table {
		assert.InDelta(t, test.z, bi.Eval(test.x, test.y), 1e-12,
			"(%g, %g)", test.x, test.y)
	}
}

func TestDerivativeFieldReference(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	f, err := NewDerivativeField(mixedXs, mixedYs, z)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{
		3.0762311696089153, 2.836622057556618, 2.5012133459612516,
		2.0389825458735302, 1.5793833188687199,
	}, mat.Row(nil, 1, f.Dx), 1e-12)
	assert.InDeltaSlice(t, []float64{
		1.4999999999999991, 6.300000000000001, 13.650000000000002, 24.0,
	}, mat.Col(nil, 2, f.Dy), 1e-12)
	assert.InDeltaSlice(t, []float64{
		1.1054945054945051, 1.093207921692982, 1.084276485033755,
		1.0796195154543597, 1.0617647058823565,
	}, mat.Row(nil, 1, f.Dxy), 1e-12)
}

func TestDerivativeFieldSymmetrized(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	f, err := NewDerivativeField(mixedXs, mixedYs, z, Threads(1))
	require.NoError(t, err)

	ny, nx := len(mixedYs), len(mixedXs)
	want := mat.NewDense(ny, nx, nil)
	for i := 0; i < ny; i++ {
		want.SetRow(i, PCHIPDeriv(mixedXs, mat.Row(nil, i, f.Dy)))
	}
	for j := 0; j < nx; j++ {
		col := PCHIPDeriv(mixedYs, mat.Col(nil, j, f.Dx))
		for i := range col {
			want.Set(i, j, (want.At(i, j)+col[i])/2)
		}
	}
	assert.True(t, mat.EqualApprox(want, f.Dxy, 1e-14))
}

func TestBiPCHIPDerivativeConsistency(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	bi, err := NewBiPCHIP(mixedXs, mixedYs, z)
	require.NoError(t, err)
	f := bi.Field()

	eps := 1e-7
	for i, y := range mixedYs {
		for j, x := range mixedXs {
			dx := (bi.Eval(x+eps, y) - bi.Eval(x-eps, y)) / (2 * eps)
			dy := (bi.Eval(x, y+eps) - bi.Eval(x, y-eps)) / (2 * eps)
			assert.InDelta(t, f.Dx.At(i, j), dx, 1e-5, "dx at (%g, %g)", x, y)
			assert.InDelta(t, f.Dy.At(i, j), dy, 1e-5, "dy at (%g, %g)", x, y)
		}
	}
}

func TestBiPCHIPQuadratic(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 2, 3}
	z := sampleGrid(xs, ys, func(x, y float64) float64 { return x*x + y*y })

	out, err := PCHIP2D(xs, ys, z,
		mat.NewDense(1, 1, []float64{1.5}), mat.NewDense(1, 1, []float64{1.5}))
	require.NoError(t, err)

	// Each axis contributes the 1D PCHIP value 2.21875 at 1.5, and the mixed
	// partial vanishes for a separable sum.
	assert.InDelta(t, 4.4375, out.At(0, 0), 1e-12)
	assert.InDelta(t, 4.5, out.At(0, 0), 0.1)
}

func TestBiPCHIPShapeInvariance(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	bi, err := NewBiPCHIP(mixedXs, mixedYs, z)
	require.NoError(t, err)

	table := []struct {
		rx, cx, ry, cy int
		r, c           int
	}{
		{1, 1, 1, 1, 1, 1},
		{3, 4, 3, 4, 3, 4},
		{1, 5, 1, 5, 1, 5},
		{6, 1, 6, 1, 6, 1},
		{1, 4, 3, 1, 3, 4},
		{3, 4, 1, 1, 3, 4},
		{1, 1, 2, 7, 2, 7},
	}

	rng := rand.New(rand.NewSource(3))
	fill := func(r, c int, lo, hi float64) *mat.Dense {
		m := mat.NewDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				m.Set(i, j, lo+rng.Float64()*(hi-lo))
			}
		}
		return m
	}

	for _, test := range table {
		qx := fill(test.rx, test.cx, 0, 2)
		qy := fill(test.ry, test.cy, 1, 4)
		out, err := bi.EvalGrid(qx, qy)
		require.NoError(t, err)

		r, c := out.Dims()
		assert.Equal(t, test.r, r)
		assert.Equal(t, test.c, c)

		bx, by := newBroadcaster(qx), newBroadcaster(qy)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				assert.Equal(t, bi.Eval(bx.at(i, j), by.at(i, j)), out.At(i, j))
			}
		}
	}
}

func TestBiPCHIPBoundaryClamp(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	bi, err := NewBiPCHIP(mixedXs, mixedYs, z)
	require.NoError(t, err)

	assert.Equal(t, len(mixedXs)-2, bi.xs.search(2))
	assert.Equal(t, len(mixedYs)-2, bi.ys.search(4))
	assert.InDelta(t, mixed(2, 4), bi.Eval(2, 4), 1e-12)
	assert.True(t, bi.InDomain(2, 4))
	assert.True(t, bi.InDomain(0, 1))
	assert.False(t, bi.InDomain(2.0001, 4))
	assert.False(t, bi.InDomain(1, 0.5))
}

func TestBiPCHIPOutsideCount(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	qx := mat.NewDense(1, 4, []float64{-0.5, 0, 1.2, 2.5})
	qy := mat.NewDense(3, 1, []float64{0.5, 1, 4})

	for _, warn := range []bool{true, false} {
		bi, err := NewBiPCHIP(
			mixedXs, mixedYs, z, WarnOutOfDomain(warn), Threads(2),
		)
		require.NoError(t, err)

		out, outside, err := bi.evalGrid(qx, qy)
		require.NoError(t, err)
		// Row y = 0.5 is entirely outside. Rows y = 1 and y = 4 each have
		// x = -0.5 and x = 2.5 outside.
		assert.Equal(t, 8, outside)
		assert.Equal(t, bi.Eval(2.5, 4), out.At(2, 3))

		assert.Equal(t, warn, bi.warnOutside(outside, 12))
		assert.False(t, bi.warnOutside(0, 12))

		_, outside, err = bi.evalGrid(
			mat.NewDense(2, 1, []float64{0, 2}), mat.NewDense(1, 1, []float64{1}),
		)
		require.NoError(t, err)
		assert.Equal(t, 0, outside)
	}
}

func TestBiPCHIPShapeMismatch(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	q := mat.NewDense(1, 1, []float64{1})

	table := []struct {
		name   string
		xs, ys []float64
		z      mat.Matrix
		qx, qy mat.Matrix
	}{
		{"transposed grid", mixedXs, mixedYs, z.T(), q, q},
		{"short x axis", []float64{0}, mixedYs, mat.NewDense(4, 1, nil), q, q},
		{"short y axis", mixedXs, []float64{1}, mat.NewDense(1, 5, nil), q, q},
		{"long x axis", append(mixedXs, 2.5), mixedYs, z, q, q},
		{"queries", mixedXs, mixedYs, z,
			mat.NewDense(2, 3, nil), mat.NewDense(3, 2, nil)},
	}

	for _, test := range table {
		out, err := PCHIP2D(test.xs, test.ys, test.z, test.qx, test.qy)
		assert.Nil(t, out, test.name)
		assert.True(t, errors.Is(err, ErrShapeMismatch), test.name)
	}

	_, err := NewDerivativeField(mixedXs, mixedYs, z.T())
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	_, err = NewUniformBiPCHIP(0, 1, 1, 0, 1, 4, mat.NewDense(4, 1, nil))
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestBiPCHIPMonotone(t *testing.T) {
	a := []float64{0, 0.1, 3, 3.1, 10}
	b := []float64{0, 5, 5.2, 9}
	z := mat.NewDense(len(b), len(a), nil)
	for i := range b {
		for j := range a {
			z.Set(i, j, a[j]+b[i])
		}
	}

	bi, err := NewUniformBiPCHIP(0, 1, len(a), 0, 2, len(b), z)
	require.NoError(t, err)
	xs, ys := bi.XAxis(), bi.YAxis()

	rng := rand.New(rand.NewSource(11))
	for n := 0; n < 2000; n++ {
		x := rng.Float64() * xs[len(xs)-1]
		y := rng.Float64() * ys[len(ys)-1]
		ix, iy := bi.xs.search(x), bi.ys.search(y)
		corners := []float64{
			z.At(iy, ix), z.At(iy+1, ix), z.At(iy, ix+1), z.At(iy+1, ix+1),
		}

		v := bi.Eval(x, y)
		assert.True(t,
			v >= floats.Min(corners)-1e-12 && v <= floats.Max(corners)+1e-12,
			"overshoot at (%g, %g): %g not in %v", x, y, v, corners)
	}
}

func TestBiPCHIPThreads(t *testing.T) {
	xs := make([]float64, 30)
	ys := make([]float64, 20)
	floats.Span(xs, 0, 29)
	floats.Span(ys, -1, 18)
	z := sampleGrid(xs, ys, func(x, y float64) float64 {
		return math.Cos(x/5) * math.Exp(-y*y/50)
	})

	serial, err := NewBiPCHIP(xs, ys, z, Threads(1))
	require.NoError(t, err)
	parallel, err := NewBiPCHIP(xs, ys, z, Threads(8))
	require.NoError(t, err)

	assert.True(t, mat.Equal(serial.field.Dxy, parallel.field.Dxy))

	qx := mat.NewDense(40, 1, nil)
	qy := mat.NewDense(1, 25, nil)
	for i := 0; i < 40; i++ {
		qx.Set(i, 0, float64(i)*0.7)
	}
	for j := 0; j < 25; j++ {
		qy.Set(0, j, -1+float64(j)*0.75)
	}
	a, err := serial.EvalGrid(qx, qy)
	require.NoError(t, err)
	b, err := parallel.EvalGrid(qx, qy)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a, b))
}

func TestBiPCHIPCopiesInput(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 1, 2}
	z := sampleGrid(xs, ys, func(x, y float64) float64 { return x + y })
	bi, err := NewBiPCHIP(xs, ys, z)
	require.NoError(t, err)

	before := bi.Eval(0.5, 0.5)
	z.Set(0, 0, 100)
	xs[0] = -10
	assert.Equal(t, before, bi.Eval(0.5, 0.5))

	f := bi.Field()
	f.Dx.Set(0, 0, 100)
	assert.Equal(t, before, bi.Eval(0.5, 0.5))
}

func TestBiPCHIPEvalAll(t *testing.T) {
	z := sampleGrid(mixedXs, mixedYs, mixed)
	bi, err := NewBiPCHIP(mixedXs, mixedYs, z)
	require.NoError(t, err)

	xs := []float64{0.25, 1.1, 2}
	ys := []float64{1.5, 2.7, 4}
	out := make([]float64, 3)
	res := bi.EvalAll(xs, ys, out)
	assert.Equal(t, &out[0], &res[0])
	for i := range xs {
		assert.Equal(t, bi.Eval(xs[i], ys[i]), out[i])
	}

	assert.Panics(t, func() { bi.EvalAll(xs, ys[:2]) })
}

func BenchmarkBiPCHIPEvalGrid100(b *testing.B) {
	xs, ys := make([]float64, 50), make([]float64, 50)
	floats.Span(xs, 0, 49)
	floats.Span(ys, 0, 49)
	z := sampleGrid(xs, ys, func(x, y float64) float64 { return x * y })
	bi, err := NewBiPCHIP(xs, ys, z)
	if err != nil {
		b.Fatal(err.Error())
	}

	qx, qy := mat.NewDense(100, 100, nil), mat.NewDense(100, 100, nil)
	for i := 0; i < 100; i++ {
		for j := 0; j < 100; j++ {
			qx.Set(i, j, float64(j)*0.49)
			qy.Set(i, j, float64(i)*0.49)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bi.EvalGrid(qx, qy)
	}
}
