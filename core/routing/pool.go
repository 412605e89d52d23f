package routing

import "github.com/kilianp07/fleetroute/core/model"

// Pool is the set of unassigned points keyed by point ID. Iteration follows
// the order in which points were added so construction is deterministic.
type Pool struct {
	byID  map[int]model.Point
	order []int
}

// NewPool returns a pool holding points. Point IDs are assumed unique; a
// repeated ID replaces the earlier point.
func NewPool(points []model.Point) *Pool {
	p := &Pool{byID: make(map[int]model.Point, len(points)), order: make([]int, 0, len(points))}
	for _, pt := range points {
		if _, ok := p.byID[pt.ID]; !ok {
			p.order = append(p.order, pt.ID)
		}
		p.byID[pt.ID] = pt
	}
	return p
}

// Len returns the number of unassigned points.
func (p *Pool) Len() int { return len(p.order) }

// Points returns the unassigned points in insertion order.
func (p *Pool) Points() []model.Point {
	out := make([]model.Point, len(p.order))
	for i, id := range p.order {
		out[i] = p.byID[id]
	}
	return out
}

// Remove drops the point with the given ID and reports whether it was present.
func (p *Pool) Remove(id int) bool {
	if _, ok := p.byID[id]; !ok {
		return false
	}
	delete(p.byID, id)
	for i, v := range p.order {
		if v == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}
