package interpolate

import (
	"gonum.org/v1/gonum/mat"
)

// DerivativeField holds the derivative estimates of a sampled surface at each
// node of its grid. All three grids have the same shape as the value grid:
// Dx.At(i, j) is dz/dx at (xs[j], ys[i]), Dy.At(i, j) is dz/dy and
// Dxy.At(i, j) is the mixed partial.
type DerivativeField struct {
	Dx, Dy, Dxy *mat.Dense
}

// NewDerivativeField estimates the first partials of z along each axis with
// PCHIPDeriv and the mixed partial as the average of differentiating Dy along
// x and Dx along y.
//
// z must have len(ys) rows and len(xs) columns, and both axes must have at
// least two points. Otherwise an error wrapping ErrShapeMismatch is returned
// and nothing is computed.
func NewDerivativeField(
	xs, ys []float64, z mat.Matrix, opts ...Option,
) (*DerivativeField, error) {
	if err := checkAxis("xs", xs); err != nil {
		return nil, err
	} else if err := checkAxis("ys", ys); err != nil {
		return nil, err
	}
	r, c := z.Dims()
	if err := checkGrid("z", xs, ys, r, c); err != nil {
		return nil, err
	}

	p := loadBiOptions(opts)
	return newDerivativeField(xs, ys, z, p.threads), nil
}

func newDerivativeField(
	xs, ys []float64, z mat.Matrix, threads int,
) *DerivativeField {
	nx, ny := len(xs), len(ys)
	f := &DerivativeField{
		Dx:  mat.NewDense(ny, nx, nil),
		Dy:  mat.NewDense(ny, nx, nil),
		Dxy: mat.NewDense(ny, nx, nil),
	}

	rowDerivs(xs, z, f.Dx, threads)
	colDerivs(ys, z, f.Dy, threads)

	dyx := mat.NewDense(ny, nx, nil)
	dxy := mat.NewDense(ny, nx, nil)
	rowDerivs(xs, f.Dy, dyx, threads)
	colDerivs(ys, f.Dx, dxy, threads)

	f.Dxy.Add(dyx, dxy)
	f.Dxy.Scale(0.5, f.Dxy)

	return f
}

// rowDerivs differentiates each row of src along xs and writes the result to
// the matching row of dst.
func rowDerivs(xs []float64, src mat.Matrix, dst *mat.Dense, threads int) {
	ny, _ := src.Dims()
	parallelRange(0, ny, threads, func(i int) {
		row := mat.Row(nil, i, src)
		PCHIPDeriv(xs, row, Out(dst.RawRowView(i)))
	})
}

// colDerivs differentiates each column of src along ys and writes the result
// to the matching column of dst.
func colDerivs(ys []float64, src mat.Matrix, dst *mat.Dense, threads int) {
	_, nx := src.Dims()
	parallelRange(0, nx, threads, func(j int) {
		col := mat.Col(nil, j, src)
		dst.SetCol(j, PCHIPDeriv(ys, col))
	})
}
