package route

// Coefficients of the energy consumption model, in Wh/km for a speed in
// km/h: c(v) = a0/v + a1 + a2*v + a3*v^2.
const (
	consA0 = 546.8
	consA1 = 50.31
	consA2 = 0.2584
	consA3 = 0.008210
)

// Consumption returns the energy consumption in Wh/km of the vehicle driving
// at v km/h. The rolling and drag terms grow with speed while the fixed
// power draw dominates at low speed, so the result diverges as v goes to 0.
func Consumption(v float64) float64 {
	return consA0/v + consA1 + consA2*v + consA3*v*v
}

// ConsumptionAll evaluates Consumption at every speed in vs. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
func ConsumptionAll(vs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(vs))}
	}
	for i, v := range vs {
		out[0][i] = Consumption(v)
	}
	return out[0]
}
