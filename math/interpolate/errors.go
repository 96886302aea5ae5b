package interpolate

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when an axis is too short or when the
	// lengths of the axes disagree with the dimensions of a grid.
	ErrShapeMismatch = errors.New("interpolate: shape mismatch")
	// ErrNotIncreasing is returned when a table's abscissas are not strictly
	// increasing.
	ErrNotIncreasing = errors.New("interpolate: abscissas not increasing")
)

func shapeErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrShapeMismatch, fmt.Sprintf(format, args...))
}

// checkAxis reports whether an axis is long enough to define a cell.
func checkAxis(name string, xs []float64) error {
	if len(xs) < 2 {
		return shapeErrorf("len(%s) = %d, but at least 2 points are needed",
			name, len(xs))
	}
	return nil
}

// checkGrid verifies that a grid with r rows and c columns matches the
// given axes.
func checkGrid(name string, xs, ys []float64, r, c int) error {
	if r != len(ys) || c != len(xs) {
		return shapeErrorf(
			"%s is %d x %d, but len(ys) = %d and len(xs) = %d",
			name, r, c, len(ys), len(xs),
		)
	}
	return nil
}
