package route

import (
	"fmt"

	"github.com/phil-mansfield/pchip/math/calc"
)

// DefaultSteps is a reasonable number of trapezoid subintervals for routes a
// few tens of km long.
const DefaultSteps = 100000

// TimeToDestination returns the time in hours needed to drive from the start
// of the route to x km, integrating 1/v with the trapezoid rule over n
// subintervals.
func (r *Route) TimeToDestination(x float64, n int) (float64, error) {
	if err := r.check(x); err != nil {
		return 0, err
	} else if n < 1 {
		return 0, fmt.Errorf("route: %d integration steps requested", n)
	}
	return calc.Trapezoid(r.pace, 0, x, n), nil
}

// TotalConsumption returns the energy in Wh used to drive from the start of
// the route to x km, integrating Consumption(v) with the trapezoid rule over
// n subintervals.
func (r *Route) TotalConsumption(x float64, n int) (float64, error) {
	if err := r.check(x); err != nil {
		return 0, err
	} else if n < 1 {
		return 0, fmt.Errorf("route: %d integration steps requested", n)
	}
	return calc.Trapezoid(r.consumption, 0, x, n), nil
}

// Distance returns how far along the route, in km, the vehicle gets after
// driving for t hours. If t is longer than it takes to drive the whole
// route, the route length is returned. Travel times are integrated with n
// trapezoid subintervals.
func (r *Route) Distance(t float64, n int) (float64, error) {
	if t < 0 {
		return 0, fmt.Errorf("route: negative travel time %g h", t)
	}
	total, err := r.TimeToDestination(r.Length(), n)
	if err != nil {
		return 0, err
	} else if t >= total {
		return r.Length(), nil
	}

	f := func(x float64) float64 {
		return calc.Trapezoid(r.pace, 0, x, n) - t
	}
	x0 := r.Length() * t / total
	x, err := calc.Newton(f, r.pace, x0, calc.Bounds(0, r.Length()))
	if err != nil {
		return 0, fmt.Errorf("route: finding distance after %g h: %w", t, err)
	}
	return x, nil
}

// Reach returns how far along the route, in km, the vehicle gets on a
// charge of c Wh. If the charge is enough for the whole route, the route
// length is returned. Consumption is integrated with n trapezoid
// subintervals.
func (r *Route) Reach(c float64, n int) (float64, error) {
	if c < 0 {
		return 0, fmt.Errorf("route: negative charge %g Wh", c)
	}
	total, err := r.TotalConsumption(r.Length(), n)
	if err != nil {
		return 0, err
	} else if c >= total {
		return r.Length(), nil
	}

	f := func(x float64) float64 {
		return calc.Trapezoid(r.consumption, 0, x, n) - c
	}
	x0 := r.Length() * c / total
	x, err := calc.Newton(f, r.consumption, x0, calc.Bounds(0, r.Length()))
	if err != nil {
		return 0, fmt.Errorf("route: finding reach of %g Wh: %w", c, err)
	}
	return x, nil
}

// pace is the time per distance, 1/v, at x km. x is assumed to be on the
// route.
func (r *Route) pace(x float64) float64 { return 1 / r.speed.Eval(x) }

// consumption is the energy per distance at x km. x is assumed to be on the
// route.
func (r *Route) consumption(x float64) float64 {
	return Consumption(r.speed.Eval(x))
}
