package mqtt

import "context"

// Waypoint is a point as seen by an agent.
type Waypoint struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// RouteAssignment is the order sent to one agent: leave the depot, visit the
// stops in order and return.
type RouteAssignment struct {
	RunID     string     `json:"run_id"`
	Agent     int        `json:"agent"`
	Depot     Waypoint   `json:"depot"`
	Stops     []Waypoint `json:"stops"`
	Cost      float64    `json:"cost"`
	Timestamp int64      `json:"timestamp"`
}

// Publisher dispatches route assignments to agents.
type Publisher interface {
	PublishRoute(ctx context.Context, a RouteAssignment) error
}
