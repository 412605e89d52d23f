package metrics

import "time"

// RouteCost is the outcome of one agent's route.
type RouteCost struct {
	Agent int
	Stops int
	Cost  float64
}

// SolveEvent describes a completed route construction.
type SolveEvent struct {
	RunID     string
	Agents    int
	Points    int
	TotalCost float64
	Routes    []RouteCost
	Elapsed   time.Duration
	Time      time.Time
}

// MetricsSink records planning runs for observability purposes.
type MetricsSink interface {
	RecordSolve(ev SolveEvent) error
}

// SeparationEvent is one sampled arrival instant. Offset is the simulated
// time since departure; Time is when the run was recorded.
type SeparationEvent struct {
	RunID       string
	Offset      float64
	MaxDistance float64
	Time        time.Time
}

// SeparationRecorder records the separation timeline of a run.
type SeparationRecorder interface {
	RecordSeparations(evs []SeparationEvent) error
}

// CoordinationEvent summarises the worst spread of the fleet during a run.
type CoordinationEvent struct {
	RunID            string
	CriticalOffset   float64
	CriticalDistance float64
	Radius           float64
	Feasible         bool
	Time             time.Time
}

// CoordinationRecorder records the critical separation of a run.
type CoordinationRecorder interface {
	RecordCoordination(ev CoordinationEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error               { return nil }
func (NopSink) RecordSeparations([]SeparationEvent) error  { return nil }
func (NopSink) RecordCoordination(CoordinationEvent) error { return nil }
