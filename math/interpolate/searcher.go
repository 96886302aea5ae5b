package interpolate

import (
	"math"
	"sort"
)

// searcher locates the cell of an axis which contains a point.
type searcher struct {
	xs []float64

	// Usually the axis is uniform. This is our estimate of the point
	// spacing.
	x0, dx float64
}

func (s *searcher) init(xs []float64) {
	s.xs = make([]float64, len(xs))
	copy(s.xs, xs)
	s.x0 = xs[0]
	s.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
}

func (s *searcher) unifInit(x0, dx float64, n int) {
	s.xs = make([]float64, n)
	for i := range s.xs {
		s.xs[i] = x0 + float64(i)*dx
	}
	s.x0, s.dx = x0, dx
}

func (s *searcher) val(i int) float64 { return s.xs[i] }
func (s *searcher) len() int          { return len(s.xs) }

// search returns the largest index i in [0, n-2] such that xs[i] <= x, where
// the first and last cells absorb every point below and above the axis. A
// point lying exactly on an interior node belongs to the cell on its right.
func (s *searcher) search(x float64) int {
	last := len(s.xs) - 2
	if math.IsNaN(x) {
		return 0
	}

	// Guess under the assumption of uniform spacing.
	if g := (x - s.x0) / s.dx; g > 0 && g < float64(last+1) {
		guess := int(g)
		if guess > last {
			guess = last
		}
		if s.owns(guess, x) {
			return guess
		}
	} else if g <= 0 && s.owns(0, x) {
		return 0
	} else if s.owns(last, x) {
		return last
	}

	// Binary search.
	return sort.Search(last, func(i int) bool { return s.xs[i+1] > x })
}

// owns reports whether cell i is the cell a scan from the left would stop
// at for x.
func (s *searcher) owns(i int, x float64) bool {
	last := len(s.xs) - 2
	return (i == 0 || s.xs[i] <= x) && (i == last || s.xs[i+1] > x)
}
