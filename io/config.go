package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"
)

const (
	ExampleInterpolateFile = `[Interpolate]

#######################
# Required Parameters #
#######################

# Text table containing the sampled values. Each line is one row of the grid
# (fixed y) and each column is one column of the grid (fixed x), so the file
# must have NY lines with NX values each. Lines starting with '#' are
# ignored.
GridFile = path/to/grid.txt

# The grid's axes. Both must be uniformly spaced: the x axis is
# X0, X0 + DX, ..., X0 + (NX - 1)*DX, and likewise for y. DX and DY must be
# positive and NX and NY must be at least 2.
X0 = 0
DX = 1
NX = 4
Y0 = 0
DY = 1
NY = 4

# Text table with one query point per line: x in the first column and y in
# the second.
QueryFile = path/to/queries.txt

# File which "x y z" lines are written to, one per query point.
Output = path/to/output.txt

#######################
# Optional Parameters #
#######################

# Number of goroutines used during evaluation. The -Threads flag is used if
# this isn't set.
# Threads = 4

# Query points outside the grid are extrapolated from the nearest boundary
# cell. By default a warning is logged when this happens.
# WarnOutOfDomain = false

# Writes a figure with one interpolated slice along x for every grid row.
# PlotFile = slices.png
# PlotPoints = 200`

	ExampleRouteFile = `[Route]

#######################
# Required Parameters #
#######################

# Quantity can be set to one of:
# [ Velocity | TimeToDestination | TotalConsumption | Distance | Reach ]
# Velocity, TimeToDestination and TotalConsumption take distances along the
# route in km as points. Distance takes driving times in hours and Reach
# takes battery charges in Wh.
Quantity = Velocity

# Points to evaluate Quantity at. Repeat the variable for each point.
Point = 2.3
Point = 4.53

# The route is read from RouteFile, a text table with distances in km in the
# first column and speeds in km/h in the second, or from RouteName in the
# SQLite Database. If all three are given, RouteFile is imported into the
# database under RouteName first.
RouteFile = path/to/speed_anna.txt
# Database = routes.sqlite
# RouteName = speed_anna

#######################
# Optional Parameters #
#######################

# Number of trapezoid subintervals used for integrals along the route.
# Steps = 100000

# File which "point value" lines are written to. Results are printed to
# stdout if this isn't set.
# Output = path/to/output.txt

# Writes a figure showing the recorded speeds and the interpolated speed
# along the route, and a figure of the consumption model.
# PlotFile = route.png
# ConsumptionPlotFile = consumption.png`
)

type InterpolateConfig struct {
	// Required
	GridFile  string
	X0, DX    float64
	NX        int
	Y0, DY    float64
	NY        int
	QueryFile string
	Output    string

	// Optional
	Threads         int
	WarnOutOfDomain bool
	PlotFile        string
	PlotPoints      int
}

type InterpolateWrapper struct {
	Interpolate InterpolateConfig
}

func DefaultInterpolateWrapper() *InterpolateWrapper {
	cfg := InterpolateConfig{WarnOutOfDomain: true, PlotPoints: 200}
	return &InterpolateWrapper{cfg}
}

// ReadInterpolateConfig reads and validates an [Interpolate] config file.
func ReadInterpolateConfig(fname string) (*InterpolateConfig, error) {
	wrap := DefaultInterpolateWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	con := &wrap.Interpolate
	return con, con.Check()
}

func (con *InterpolateConfig) ValidGridFile() bool  { return con.GridFile != "" }
func (con *InterpolateConfig) ValidQueryFile() bool { return con.QueryFile != "" }
func (con *InterpolateConfig) ValidOutput() bool    { return con.Output != "" }
func (con *InterpolateConfig) ValidPlotFile() bool  { return con.PlotFile != "" }

func (con *InterpolateConfig) ValidAxes() bool {
	return con.DX > 0 && con.DY > 0 && con.NX >= 2 && con.NY >= 2
}

func (con *InterpolateConfig) ValidPlotPoints() bool {
	return con.PlotPoints >= 2
}

// Check returns a descriptive error for the first invalid parameter.
func (con *InterpolateConfig) Check() error {
	if !con.ValidGridFile() {
		return fmt.Errorf("Invalid/non-existent 'GridFile' value.")
	} else if !con.ValidQueryFile() {
		return fmt.Errorf("Invalid/non-existent 'QueryFile' value.")
	} else if !con.ValidOutput() {
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	} else if !con.ValidAxes() {
		return fmt.Errorf(
			"DX = %g and DY = %g must be positive, and NX = %d and NY = %d "+
				"must be at least 2.", con.DX, con.DY, con.NX, con.NY,
		)
	} else if con.ValidPlotFile() && !con.ValidPlotPoints() {
		return fmt.Errorf("'PlotPoints' must be at least 2, but is %d.",
			con.PlotPoints)
	}
	return nil
}

// Axes returns the x and y axes described by the config.
func (con *InterpolateConfig) Axes() (xs, ys []float64) {
	xs, ys = make([]float64, con.NX), make([]float64, con.NY)
	for i := range xs {
		xs[i] = con.X0 + float64(i)*con.DX
	}
	for i := range ys {
		ys[i] = con.Y0 + float64(i)*con.DY
	}
	return xs, ys
}

type RouteConfig struct {
	// Required
	Quantity  string
	Point     []float64
	RouteFile string
	Database  string
	RouteName string

	// Optional
	Steps               int
	Output              string
	PlotFile            string
	ConsumptionPlotFile string
}

type RouteWrapper struct {
	Route RouteConfig
}

func DefaultRouteWrapper() *RouteWrapper {
	cfg := RouteConfig{Steps: 100000}
	return &RouteWrapper{cfg}
}

// ReadRouteConfig reads and validates a [Route] config file.
func ReadRouteConfig(fname string) (*RouteConfig, error) {
	wrap := DefaultRouteWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	con := &wrap.Route
	return con, con.Check()
}

var quantities = []string{
	"Velocity", "TimeToDestination", "TotalConsumption", "Distance", "Reach",
}

func (con *RouteConfig) ValidQuantity() bool {
	for _, q := range quantities {
		if con.Quantity == q {
			return true
		}
	}
	return false
}

func (con *RouteConfig) ValidPoint() bool { return len(con.Point) > 0 }
func (con *RouteConfig) ValidSteps() bool { return con.Steps >= 1 }

func (con *RouteConfig) ValidRouteFile() bool { return con.RouteFile != "" }

func (con *RouteConfig) ValidDatabase() bool {
	return con.Database != "" && con.RouteName != ""
}

// ImportsRoute reports whether the route file should be copied into the
// database before use.
func (con *RouteConfig) ImportsRoute() bool {
	return con.ValidRouteFile() && con.ValidDatabase()
}

// Check returns a descriptive error for the first invalid parameter.
func (con *RouteConfig) Check() error {
	tmp := con.Quantity
	con.Quantity = strings.TrimSpace(con.Quantity)
	if !con.ValidQuantity() {
		return fmt.Errorf(
			"Quantity must be one of [%s]. '%s' is not recognized.",
			strings.Join(quantities, " | "), tmp,
		)
	} else if !con.ValidPoint() {
		return fmt.Errorf("At least one 'Point' must be given.")
	} else if !con.ValidRouteFile() && !con.ValidDatabase() {
		return fmt.Errorf(
			"You must set either a valid 'RouteFile' or both 'Database' " +
				"and 'RouteName'.",
		)
	} else if con.Database != "" && con.RouteName == "" {
		return fmt.Errorf("'Database' is set, but 'RouteName' isn't.")
	} else if !con.ValidSteps() {
		return fmt.Errorf("'Steps' must be positive, but is %d.", con.Steps)
	}
	return nil
}
