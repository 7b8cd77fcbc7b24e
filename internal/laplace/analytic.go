package laplace

import "math"

// Reference is the analytic comparison field u(x,y) = e^(-pi*x) * sin(pi*y),
// harmonic on the whole square.
func Reference(x, y float64) float64 {
	return math.Exp(-math.Pi*x) * math.Sin(math.Pi*y)
}
