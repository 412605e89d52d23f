// Package routing builds multi-agent depot routes with convex-hull seeding
// followed by global cheapest insertion.
package routing

import (
	"github.com/kilianp07/fleetroute/core/hull"
	"github.com/kilianp07/fleetroute/core/logger"
	"github.com/kilianp07/fleetroute/core/model"
)

// minHull is the smallest pool that still seeds a route from a hull.
const minHull = 3

// Constructor assigns points to agents.
type Constructor struct {
	log logger.Logger
}

// New returns a Constructor. A nil logger discards output.
func New(log logger.Logger) *Constructor {
	return &Constructor{log: logger.OrNop(log)}
}

// Build partitions points among agents and returns one route per agent.
// The depot must not be part of points. Every point ends up in exactly one
// route; agents that could not be seeded and received no insertion keep an
// empty route.
func (c *Constructor) Build(depot model.Point, points []model.Point, agents int) model.Fleet {
	if agents <= 0 {
		return model.Fleet{}
	}
	fleet := make(model.Fleet, agents)
	pool := NewPool(points)
	c.Seed(fleet, pool)
	for pool.Len() > 0 {
		if !c.Insert(fleet, depot, pool) {
			c.log.Warnf("no insertion candidate with %d points unassigned", pool.Len())
			break
		}
	}
	return fleet
}

// Seed gives each agent, in order, the convex hull of the points still in the
// pool while at least three remain. Later agents keep their current route.
func (c *Constructor) Seed(fleet model.Fleet, pool *Pool) {
	for agent := range fleet {
		if pool.Len() < minHull {
			return
		}
		h := hull.Convex(pool.Points())
		fleet[agent] = model.Route(h)
		for _, p := range h {
			pool.Remove(p.ID)
		}
		c.log.Debugw("seeded route", map[string]any{
			"agent":     agent,
			"hull_size": len(h),
			"remaining": pool.Len(),
		})
	}
}

// Insert performs one cheapest-insertion round: the globally cheapest
// candidate is placed into its route and removed from the pool. It reports
// false when nothing could be inserted.
func (c *Constructor) Insert(fleet model.Fleet, depot model.Point, pool *Pool) bool {
	if pool.Len() == 0 {
		return false
	}
	best, ok := Cheapest(fleet, depot, pool.Points())
	if !ok {
		return false
	}
	fleet[best.Agent] = fleet[best.Agent].Insert(best.Index, best.Point)
	pool.Remove(best.Point.ID)
	c.log.Debugw("inserted point", map[string]any{
		"point": best.Point.ID,
		"agent": best.Agent,
		"index": best.Index,
		"cost":  best.Cost,
	})
	return true
}
