// Package cost measures route lengths. Every route is closed through the
// depot, so an empty route costs nothing.
package cost

import "github.com/kilianp07/fleetroute/core/model"

// Partial returns the length of depot -> route -> depot.
func Partial(route model.Route, depot model.Point) float64 {
	if len(route) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range route.Edges(depot) {
		total += e.Length()
	}
	return total
}

// Total returns the summed length of every non-empty route in the fleet.
func Total(fleet model.Fleet, depot model.Point) float64 {
	total := 0.0
	for _, r := range fleet {
		total += Partial(r, depot)
	}
	return total
}

// PerAgent returns Partial for each route, indexed by agent.
func PerAgent(fleet model.Fleet, depot model.Point) []float64 {
	out := make([]float64, len(fleet))
	for i, r := range fleet {
		out[i] = Partial(r, depot)
	}
	return out
}
