package timeline

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/fleetroute/core/model"
)

// ArrivalEvent is the instant an agent finishes one edge of its route,
// including the final leg back to the depot.
type ArrivalEvent struct {
	Time  float64
	Agent int
}

// SeparationRecord is the largest distance between any two agents at an
// arrival instant. MaxDistance is always strictly positive.
type SeparationRecord struct {
	Time        float64
	MaxDistance float64
}

// ArrivalEvents lists the arrival events of every agent, ordered by time.
// Agents with empty routes never leave the depot and produce no events.
func ArrivalEvents(fleet model.Fleet, depot model.Point) []ArrivalEvent {
	var events []ArrivalEvent
	for agent, route := range fleet {
		if len(route) == 0 {
			continue
		}
		elapsed := 0.0
		for _, e := range route.Edges(depot) {
			elapsed += e.Length()
			events = append(events, ArrivalEvent{Time: elapsed, Agent: agent})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
	return events
}

// Instants returns the sorted arrival times with exact duplicates collapsed.
func Instants(events []ArrivalEvent) []float64 {
	times := make([]float64, 0, len(events))
	for _, ev := range events {
		times = append(times, ev.Time)
	}
	sort.Float64s(times)
	out := times[:0]
	for i, t := range times {
		if i == 0 || t != times[i-1] {
			out = append(out, t)
		}
	}
	return out
}

// Positions samples every agent's position at time t.
func Positions(fleet model.Fleet, depot model.Point, t float64) []model.Point {
	out := make([]model.Point, len(fleet))
	for i, r := range fleet {
		out[i] = PositionAt(r, depot, t)
	}
	return out
}

// MaxPairwise returns the largest distance between any two points, or 0 for
// fewer than two points.
func MaxPairwise(points []model.Point) float64 {
	maxDist := 0.0
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if d := points[i].Distance(points[j]); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}

// Separations samples the fleet at every unique arrival instant and records
// the maximum pairwise agent distance. Instants where all agents share one
// position are skipped.
func Separations(fleet model.Fleet, depot model.Point) []SeparationRecord {
	return measure(fleet, depot, Instants(ArrivalEvents(fleet, depot)))
}

func measure(fleet model.Fleet, depot model.Point, instants []float64) []SeparationRecord {
	var records []SeparationRecord
	for _, t := range instants {
		if d := MaxPairwise(Positions(fleet, depot, t)); d > 0 {
			records = append(records, SeparationRecord{Time: t, MaxDistance: d})
		}
	}
	return records
}

// Critical returns the record with the largest separation. The earliest one
// wins on ties. ok is false when records is empty.
func Critical(records []SeparationRecord) (crit SeparationRecord, ok bool) {
	for i, r := range records {
		if i == 0 || r.MaxDistance > crit.MaxDistance {
			crit = r
		}
	}
	return crit, len(records) > 0
}

// Report summarises the coordination analysis of a fleet.
type Report struct {
	Events   int
	Instants int
	Records  []SeparationRecord
	Critical SeparationRecord
	// HasCritical is false when no instant had two agents apart.
	HasCritical bool
	// Mean is the average MaxDistance over Records.
	Mean float64
	// Radius is the communication radius checked against; 0 means unchecked.
	Radius float64
	// Feasible reports whether the fleet never spreads beyond Radius.
	Feasible bool
}

// Analyze runs the separation analysis and checks it against a communication
// radius. A zero radius disables the check.
func Analyze(fleet model.Fleet, depot model.Point, radius float64) Report {
	events := ArrivalEvents(fleet, depot)
	instants := Instants(events)
	records := measure(fleet, depot, instants)
	rep := Report{
		Events:   len(events),
		Instants: len(instants),
		Records:  records,
		Radius:   radius,
		Feasible: true,
	}
	rep.Critical, rep.HasCritical = Critical(records)
	if len(records) > 0 {
		dists := make([]float64, len(records))
		for i, r := range records {
			dists[i] = r.MaxDistance
		}
		rep.Mean = stat.Mean(dists, nil)
	}
	if radius > 0 && rep.HasCritical {
		rep.Feasible = rep.Critical.MaxDistance <= radius
	}
	return rep
}
