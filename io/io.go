/*package io handles the configuration files and text tables used by the pchip
command.
*/
package io

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/phil-mansfield/table"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/pchip/math/interpolate"
)

// ReadGrid reads a grid of values with nx columns from a text table. Row i of
// the table becomes row i of the returned matrix. An error wrapping
// interpolate.ErrShapeMismatch is returned if any line of the table does not
// have exactly nx columns.
func ReadGrid(fname string, nx int) (*mat.Dense, error) {
	if nx < 1 {
		return nil, fmt.Errorf("ReadGrid given nx = %d.", nx)
	}
	if err := checkColumns(fname, nx); err != nil {
		return nil, err
	}

	colIdxs := make([]int, nx)
	for i := range colIdxs {
		colIdxs[i] = i
	}
	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	ny := len(cols[0])
	if ny == 0 {
		return nil, fmt.Errorf("Grid file '%s' is empty.", fname)
	}
	z := mat.NewDense(ny, nx, nil)
	for j, col := range cols {
		z.SetCol(j, col)
	}

	glog.V(1).Infof("Read %d x %d grid from '%s'.", ny, nx, fname)
	return z, nil
}

// checkColumns verifies that every non-comment line of a text table has n
// columns.
func checkColumns(fname string, n int) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		if cols := len(strings.Fields(text)); cols != n {
			return fmt.Errorf(
				"%w: line %d of '%s' has %d columns, but NX = %d",
				interpolate.ErrShapeMismatch, line, fname, cols, n,
			)
		}
	}
	return sc.Err()
}

// ReadQueries reads query points from a text table with x in the first
// column and y in the second. The points are returned as n x 1 matrices.
func ReadQueries(fname string) (qx, qy *mat.Dense, err error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, nil, err
	}

	n := len(cols[0])
	if n == 0 {
		return nil, nil, fmt.Errorf("Query file '%s' is empty.", fname)
	}
	qx = mat.NewDense(n, 1, cols[0])
	qy = mat.NewDense(n, 1, cols[1])
	return qx, qy, nil
}

// WriteResults writes one "x y z" line for every element of the three
// matrices, which must have the same shape.
func WriteResults(fname string, qx, qy, z mat.Matrix) error {
	r, c := z.Dims()
	if rx, cx := qx.Dims(); rx != r || cx != c {
		return fmt.Errorf("qx is %d x %d, but z is %d x %d", rx, cx, r, c)
	} else if ry, cy := qy.Dims(); ry != r || cy != c {
		return fmt.Errorf("qy is %d x %d, but z is %d x %d", ry, cy, r, c)
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# x y z")
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			fmt.Fprintf(w, "%.17g %.17g %.17g\n",
				qx.At(i, j), qy.At(i, j), z.At(i, j))
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePairs writes one "x y" line for each pair of values, or to stdout if
// fname is empty.
func WritePairs(fname string, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("len(xs) = %d, but len(ys) = %d", len(xs), len(ys))
	}

	f := os.Stdout
	if fname != "" {
		var err error
		if f, err = os.Create(fname); err != nil {
			return err
		}
	}

	w := bufio.NewWriter(f)
	for i := range xs {
		fmt.Fprintf(w, "%.17g %.17g\n", xs[i], ys[i])
	}

	if err := w.Flush(); err != nil {
		if fname != "" {
			f.Close()
		}
		return err
	}
	if fname != "" {
		return f.Close()
	}
	return nil
}
