// Package timeline turns static routes into trajectories at unit speed and
// measures how far apart the agents drift while executing them.
package timeline

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/kilianp07/fleetroute/core/cost"
	"github.com/kilianp07/fleetroute/core/model"
)

// PositionID marks interpolated positions that are not input points.
const PositionID = -1

// PositionAt returns where an agent following route is at time t. Agents
// travel at unit speed, so time and distance are interchangeable. Before
// departure and after the route completes the agent sits at the depot.
func PositionAt(route model.Route, depot model.Point, t float64) model.Point {
	if t <= 0 {
		return depot
	}
	elapsed := 0.0
	for _, e := range route.Edges(depot) {
		d := e.Length()
		if elapsed+d >= t {
			progress := 0.0
			if d > 0 {
				progress = (t - elapsed) / d
			}
			step := r2.Scale(progress, r2.Sub(e.To.Vec(), e.From.Vec()))
			return model.At(r2.Add(e.From.Vec(), step), PositionID)
		}
		elapsed += d
	}
	return depot
}

// Duration returns the time an agent needs to complete route.
func Duration(route model.Route, depot model.Point) float64 { return cost.Partial(route, depot) }
