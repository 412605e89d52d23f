package instance

import (
	"math/rand"

	"github.com/kilianp07/fleetroute/config"
	"github.com/kilianp07/fleetroute/core/model"
)

// Generate returns cfg.Nodes points drawn uniformly from [0, cfg.Size)².
// Point 0 is the depot. The same seed always yields the same instance.
func Generate(cfg config.GeneratorConfig, solver config.SolverConfig) Instance {
	rng := rand.New(rand.NewSource(cfg.Seed))
	points := make([]model.Point, cfg.Nodes)
	for i := range points {
		points[i] = model.Point{X: rng.Float64() * cfg.Size, Y: rng.Float64() * cfg.Size, ID: i}
	}
	return Instance{Agents: solver.Agents, Radius: solver.Radius, Points: points}
}
