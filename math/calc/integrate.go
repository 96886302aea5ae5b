/*package calc provides some basic calculus routines.
*/
package calc

import (
	"fmt"
)

// Trapezoid integrates f over [a, b] with the composite trapezoid rule using
// n uniform subintervals. b may be smaller than a, in which case the result
// is negated as usual.
func Trapezoid(f func(float64) float64, a, b float64, n int) float64 {
	if n < 1 {
		panic(fmt.Sprintf("Trapezoid given %d subintervals.", n))
	}

	h := (b - a) / float64(n)
	sum := (f(a) + f(b)) / 2
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*h)
	}
	return sum * h
}
