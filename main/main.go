package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"strings"

	"github.com/golang/glog"
	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/pchip/io"
	"github.com/phil-mansfield/pchip/math/interpolate"
	"github.com/phil-mansfield/pchip/plot"
	"github.com/phil-mansfield/pchip/route"
)

const (
	plotSpeedLow, plotSpeedHigh = 1.0, 200.0
	plotPoints                  = 500
)

func main() {
	var (
		interpolateStr, routeStr string
		exampleConfig            string
		threads                  int
	)
	vars := map[string]*string{
		"Interpolate":   &interpolateStr,
		"Route":         &routeStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&interpolateStr, "Interpolate", "",
		"Configuration file for [Interpolate] mode.",
	)
	flag.StringVar(
		&routeStr, "Route", "", "Configuration file for [Route] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Interpolate' "+
			"and 'Route'.",
	)

	flag.Parse()
	defer glog.Flush()

	modeName, err := getModeName(vars)
	if err != nil {
		glog.Exit(err.Error())
	}

	switch modeName {
	case "Interpolate":
		con, err := io.ReadInterpolateConfig(interpolateStr)
		if err != nil {
			glog.Exit(err.Error())
		}
		if con.Threads <= 0 {
			con.Threads = threads
		}
		if err := interpolateMain(con); err != nil {
			glog.Exit(err.Error())
		}

	case "Route":
		con, err := io.ReadRouteConfig(routeStr)
		if err != nil {
			glog.Exit(err.Error())
		}
		if err := routeMain(context.Background(), con); err != nil {
			glog.Exit(err.Error())
		}

	case "ExampleConfig":
		s, err := exampleConfigFile(exampleConfig)
		if err != nil {
			glog.Exit(err.Error())
		}
		fmt.Println(s)

	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but pchip "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func exampleConfigFile(name string) (string, error) {
	switch name {
	case "Interpolate":
		return io.ExampleInterpolateFile, nil
	case "Route":
		return io.ExampleRouteFile, nil
	}
	return "", fmt.Errorf(
		"Unrecognized 'ExampleConfig' argument '%s'. Only recognized "+
			"arguments are 'Interpolate' and 'Route'.", name,
	)
}

// interpolateMain reads the grid and query points named in con, evaluates
// the interpolator at every query and writes the results.
func interpolateMain(con *io.InterpolateConfig) error {
	z, err := io.ReadGrid(con.GridFile, con.NX)
	if err != nil {
		return err
	}
	qx, qy, err := io.ReadQueries(con.QueryFile)
	if err != nil {
		return err
	}

	xs, ys := con.Axes()
	bi, err := interpolate.NewBiPCHIP(
		xs, ys, z,
		interpolate.Threads(con.Threads),
		interpolate.WarnOutOfDomain(con.WarnOutOfDomain),
	)
	if err != nil {
		return err
	}

	out, err := bi.EvalGrid(qx, qy)
	if err != nil {
		return err
	}
	if err := io.WriteResults(con.Output, qx, qy, out); err != nil {
		return err
	}
	glog.Infof("Wrote %d interpolated values to '%s'.",
		len(out.RawMatrix().Data), con.Output)

	if con.ValidPlotFile() {
		if err := plot.Slices(con.PlotFile, bi, con.PlotPoints); err != nil {
			return err
		}
		plt.Execute()
	}
	return nil
}

// routeMain loads the route named in con and evaluates con.Quantity at each
// of its points.
func routeMain(ctx context.Context, con *io.RouteConfig) error {
	r, err := loadRoute(ctx, con)
	if err != nil {
		return err
	}

	vals, err := evalQuantity(r, con.Quantity, con.Point, con.Steps)
	if err != nil {
		return err
	}
	if err := io.WritePairs(con.Output, con.Point, vals); err != nil {
		return err
	}

	plotted := false
	if con.PlotFile != "" {
		if err := plot.Route(con.PlotFile, r, plotPoints); err != nil {
			return err
		}
		plotted = true
	}
	if con.ConsumptionPlotFile != "" {
		err := plot.Consumption(
			con.ConsumptionPlotFile, plotSpeedLow, plotSpeedHigh, plotPoints,
		)
		if err != nil {
			return err
		}
		plotted = true
	}
	if plotted {
		plt.Execute()
	}
	return nil
}

func loadRoute(ctx context.Context, con *io.RouteConfig) (*route.Route, error) {
	if !con.ValidDatabase() {
		return route.ReadFile(con.RouteFile)
	}

	store, err := route.OpenStore(con.Database)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if con.ImportsRoute() {
		r, err := route.ReadFile(con.RouteFile)
		if err != nil {
			return nil, err
		}
		if err := store.Save(ctx, con.RouteName, r); err != nil {
			return nil, err
		}
		glog.Infof("Imported '%s' into '%s' as '%s'.",
			con.RouteFile, con.Database, con.RouteName)
		return r, nil
	}

	return store.Load(ctx, con.RouteName)
}

func evalQuantity(
	r *route.Route, quantity string, points []float64, steps int,
) ([]float64, error) {
	if quantity == "Velocity" {
		return r.VelocityAll(points)
	}

	var f func(float64, int) (float64, error)
	switch quantity {
	case "TimeToDestination":
		f = r.TimeToDestination
	case "TotalConsumption":
		f = r.TotalConsumption
	case "Distance":
		f = r.Distance
	case "Reach":
		f = r.Reach
	default:
		return nil, fmt.Errorf("Unrecognized quantity '%s'.", quantity)
	}

	vals := make([]float64, len(points))
	for i, p := range points {
		var err error
		if vals[i], err = f(p, steps); err != nil {
			return nil, err
		}
	}
	return vals, nil
}
