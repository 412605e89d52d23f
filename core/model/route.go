package model

// Route is the ordered list of points visited by one agent. The depot is
// implicit at both ends and never stored in the route.
type Route []Point

// Fleet holds one Route per agent, indexed by agent.
type Fleet []Route

// Edge is one leg of a closed route path.
type Edge struct {
	From Point
	To   Point
	// Index is the position in the route at which a point inserted on this
	// edge would be placed.
	Index int
}

// Length returns the Euclidean length of the edge.
func (e Edge) Length() float64 { return e.From.Distance(e.To) }

// Edges returns the len(r)+1 edges of depot -> r... -> depot. The last edge
// always closes back to the depot. An empty route yields the single
// degenerate edge depot -> depot.
func (r Route) Edges(depot Point) []Edge {
	edges := make([]Edge, 0, len(r)+1)
	prev := depot
	for i, p := range r {
		edges = append(edges, Edge{From: prev, To: p, Index: i})
		prev = p
	}
	return append(edges, Edge{From: prev, To: depot, Index: len(r)})
}

// Path returns depot + r + depot.
func (r Route) Path(depot Point) []Point {
	path := make([]Point, 0, len(r)+2)
	path = append(path, depot)
	path = append(path, r...)
	return append(path, depot)
}

// IDs returns the visiting order by point ID.
func (r Route) IDs() []int {
	ids := make([]int, len(r))
	for i, p := range r {
		ids[i] = p.ID
	}
	return ids
}

// Insert returns r with p placed at position i.
func (r Route) Insert(i int, p Point) Route {
	r = append(r, Point{})
	copy(r[i+1:], r[i:])
	r[i] = p
	return r
}

// Clone returns a deep copy of the fleet.
func (f Fleet) Clone() Fleet {
	out := make(Fleet, len(f))
	for i, r := range f {
		if r != nil {
			out[i] = append(Route(nil), r...)
		}
	}
	return out
}

// Size returns the number of points assigned across all routes.
func (f Fleet) Size() int {
	n := 0
	for _, r := range f {
		n += len(r)
	}
	return n
}
