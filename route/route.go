/*package route models a vehicle travelling along a route whose speed has been
sampled at a sequence of distances. Speeds between samples are found with
monotone cubic interpolation, so the interpolated speed never overshoots the
recorded data.
*/
package route

import (
	"errors"
	"fmt"

	"github.com/phil-mansfield/pchip/math/interpolate"
)

var (
	// ErrOutOfRoute is returned when a position lies before the start or
	// beyond the end of a route.
	ErrOutOfRoute = errors.New("route: position outside route")
	// ErrInvalidRoute is returned when route samples cannot describe a
	// route.
	ErrInvalidRoute = errors.New("route: invalid route")
)

// Route is a speed profile sampled along a route. Distances are in km and
// speeds in km/h.
type Route struct {
	DistanceKm, SpeedKmph []float64

	speed *interpolate.PCHIP
}

// New creates a route from speed samples. distanceKm must start at zero, be
// strictly increasing and have the same length as speedKmph.
// Every speed must be positive. Both slices are copied.
func New(distanceKm, speedKmph []float64) (*Route, error) {
	if len(distanceKm) != len(speedKmph) {
		return nil, fmt.Errorf(
			"%w: len(distanceKm) = %d, but len(speedKmph) = %d",
			ErrInvalidRoute, len(distanceKm), len(speedKmph),
		)
	} else if len(distanceKm) < 2 {
		return nil, fmt.Errorf("%w: %d samples given, need at least 2",
			ErrInvalidRoute, len(distanceKm))
	} else if distanceKm[0] != 0 {
		return nil, fmt.Errorf("%w: route starts at %g km instead of 0",
			ErrInvalidRoute, distanceKm[0])
	}
	for i, v := range speedKmph {
		if !(v > 0) {
			return nil, fmt.Errorf("%w: speed at %g km is %g km/h",
				ErrInvalidRoute, distanceKm[i], v)
		}
	}

	r := &Route{
		DistanceKm: append([]float64(nil), distanceKm...),
		SpeedKmph:  append([]float64(nil), speedKmph...),
	}

	var err error
	r.speed, err = interpolate.NewPCHIP(r.DistanceKm, r.SpeedKmph)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoute, err)
	}
	return r, nil
}

// Length returns the distance of the final sample in km.
func (r *Route) Length() float64 { return r.DistanceKm[len(r.DistanceKm)-1] }

// Velocity returns the interpolated speed in km/h at x km along the route.
func (r *Route) Velocity(x float64) (float64, error) {
	if err := r.check(x); err != nil {
		return 0, err
	}
	return r.speed.Eval(x), nil
}

// VelocityAll returns the interpolated speed at each of the given distances.
// If any distance lies outside the route, nothing is evaluated.
func (r *Route) VelocityAll(xs []float64, out ...[]float64) ([]float64, error) {
	for _, x := range xs {
		if err := r.check(x); err != nil {
			return nil, err
		}
	}
	return r.speed.EvalAll(xs, out...), nil
}

func (r *Route) check(x float64) error {
	if x < 0 {
		return fmt.Errorf("%w: x = %g km is negative", ErrOutOfRoute, x)
	} else if x > r.Length() {
		return fmt.Errorf("%w: x = %g km is beyond the route length %g km",
			ErrOutOfRoute, x, r.Length())
	} else if x != x {
		return fmt.Errorf("%w: x is NaN", ErrOutOfRoute)
	}
	return nil
}
