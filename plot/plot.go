/*package plot queues matplotlib figures for interpolated grids and routes.

None of the functions here draw anything on their own. They append commands
to the pyplot script, and the caller runs all of them at once with
pyplot.Execute().
*/
package plot

import (
	"fmt"

	"github.com/golang/glog"
	plt "github.com/phil-mansfield/pyplot"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/pchip/math/interpolate"
	"github.com/phil-mansfield/pchip/route"
)

var colors = []string{
	"DarkSlateBlue", "DarkSlateGray", "DarkTurquoise",
	"DarkViolet", "DeepPink", "DimGray",
}

// Slices plots the interpolated surface along x at each y of the grid, using
// n evaluation points per slice. The grid values are drawn as points.
func Slices(fname string, bi *interpolate.BiPCHIP, n int) error {
	if n < 2 {
		return fmt.Errorf("Slices given n = %d.", n)
	}

	xAxis, yAxis := bi.XAxis(), bi.YAxis()
	xs := make([]float64, n)
	floats.Span(xs, xAxis[0], xAxis[len(xAxis)-1])
	ys, zs := make([]float64, n), make([]float64, n)
	nodeYs, nodeZs := make([]float64, len(xAxis)), make([]float64, len(xAxis))

	plt.Figure(plt.FigSize(8, 6))
	for j, y := range yAxis {
		for i := range ys {
			ys[i] = y
		}
		bi.EvalAll(xs, ys, zs)

		for i := range nodeYs {
			nodeYs[i] = y
		}
		bi.EvalAll(xAxis, nodeYs, nodeZs)

		c := colors[j%len(colors)]
		plt.Plot(xs, zs, plt.LW(2), plt.C(c))
		plt.Plot(xAxis, nodeZs, "o", plt.C(c))
	}

	plt.Title(fmt.Sprintf("%d slices at fixed $y$", len(yAxis)))
	plt.XLabel(`$x$`, plt.FontSize(16))
	plt.YLabel(`$z(x, y)$`, plt.FontSize(16))
	plt.XLim(xAxis[0], xAxis[len(xAxis)-1])
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)

	glog.V(1).Infof("Queued slice plot '%s'.", fname)
	return nil
}

// Route plots the recorded speeds of r along with the interpolated speed at
// n evenly spaced distances.
func Route(fname string, r *route.Route, n int) error {
	if n < 2 {
		return fmt.Errorf("Route given n = %d.", n)
	}

	xs := make([]float64, n)
	floats.Span(xs, 0, r.Length())
	vs, err := r.VelocityAll(xs)
	if err != nil {
		return err
	}

	plt.Figure(plt.FigSize(8, 6))
	plt.Plot(xs, vs, "r", plt.LW(3))
	plt.Plot(r.DistanceKm, r.SpeedKmph, "ok")

	plt.Title(fmt.Sprintf("Route of %.3g km", r.Length()))
	plt.XLabel(`Distance [km]`, plt.FontSize(16))
	plt.YLabel(`Speed [km/h]`, plt.FontSize(16))
	plt.XLim(0, r.Length())
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"))
	plt.SaveFig(fname)

	glog.V(1).Infof("Queued route plot '%s'.", fname)
	return nil
}

// Consumption plots the consumption model between vLow and vHigh km/h.
func Consumption(fname string, vLow, vHigh float64, n int) error {
	if n < 2 {
		return fmt.Errorf("Consumption given n = %d.", n)
	} else if !(vLow > 0) || !(vHigh > vLow) {
		return fmt.Errorf(
			"Consumption given speed range [%g, %g].", vLow, vHigh,
		)
	}

	vs := make([]float64, n)
	floats.LogSpan(vs, vLow, vHigh)
	cs := route.ConsumptionAll(vs)

	plt.Figure()
	plt.Plot(vs, cs, "k", plt.LW(2))

	plt.XLabel(`Speed [km/h]`, plt.FontSize(16))
	plt.YLabel(`Consumption [Wh/km]`, plt.FontSize(16))
	plt.XScale("log")
	plt.YScale("log")
	plt.XLim(vLow, vHigh)
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(fname)

	glog.V(1).Infof("Queued consumption plot '%s'.", fname)
	return nil
}
