package route

import (
	"bufio"
	"fmt"
	"os"

	"github.com/phil-mansfield/table"
)

// ReadFile reads a route from a text table with distances in km in the first
// column and speeds in km/h in the second. Lines starting with '#' are
// comments.
func ReadFile(fname string) (*Route, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, err
	}

	r, err := New(cols[0], cols[1])
	if err != nil {
		return nil, fmt.Errorf("reading route file '%s': %w", fname, err)
	}
	return r, nil
}

// WriteFile writes r as a text table which can be read back by ReadFile.
func (r *Route) WriteFile(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# distance_km speed_kmph")
	for i := range r.DistanceKm {
		fmt.Fprintf(w, "%.17g %.17g\n", r.DistanceKm[i], r.SpeedKmph[i])
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
