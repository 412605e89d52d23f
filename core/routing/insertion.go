package routing

import (
	"math"

	"github.com/kilianp07/fleetroute/core/model"
)

// Candidate is one way of placing an unassigned point into the fleet.
type Candidate struct {
	Point model.Point
	Agent int
	// Index is the position the point takes in the agent's route.
	Index int
	Cost  float64
}

// Detour is the marginal cost of visiting p between the ends of e.
func Detour(e model.Edge, p model.Point) float64 {
	return e.From.Distance(p) + p.Distance(e.To) - e.From.Distance(e.To)
}

// Cheapest scans every (point, agent, position) triple and returns the one
// with the lowest insertion cost. An empty route accepts a point as its sole
// element for twice the depot distance. Ties keep the first triple found in
// point, agent, position order. ok is false when no candidate exists.
func Cheapest(fleet model.Fleet, depot model.Point, unassigned []model.Point) (best Candidate, ok bool) {
	best.Cost = math.Inf(1)
	for _, p := range unassigned {
		for agent, route := range fleet {
			if len(route) == 0 {
				if c := 2 * depot.Distance(p); c < best.Cost {
					best = Candidate{Point: p, Agent: agent, Index: 0, Cost: c}
					ok = true
				}
				continue
			}
			for _, e := range route.Edges(depot) {
				if c := Detour(e, p); c < best.Cost {
					best = Candidate{Point: p, Agent: agent, Index: e.Index, Cost: c}
					ok = true
				}
			}
		}
	}
	return best, ok
}
