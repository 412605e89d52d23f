package timeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetroute/core/model"
)

var depot = model.Point{X: 0, Y: 0, ID: 0}

func assertAt(t *testing.T, want model.Point, got model.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

func TestPositionAt(t *testing.T) {
	route := model.Route{{X: 10, Y: 0, ID: 1}, {X: 10, Y: 10, ID: 2}}
	total := Duration(route, depot)
	require.InDelta(t, 20+math.Sqrt(200), total, 1e-9)

	tests := []struct {
		name string
		t    float64
		want model.Point
	}{
		{"start", 0, depot},
		{"first leg", 4, model.Point{X: 4}},
		{"first stop", 10, model.Point{X: 10}},
		{"second leg", 15, model.Point{X: 10, Y: 5}},
		{"return leg", 20 + math.Sqrt(200)/2, model.Point{X: 5, Y: 5}},
		{"end", total, depot},
		{"after end", total + 100, depot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAt(t, tt.want, PositionAt(route, depot, tt.t))
		})
	}
}

func TestPositionAt_ContinuousAcrossStops(t *testing.T) {
	route := model.Route{{X: 3, Y: 4, ID: 1}, {X: 3, Y: 10, ID: 2}, {X: -2, Y: 6, ID: 3}}
	elapsed := 0.0
	for _, e := range route.Edges(depot) {
		elapsed += e.Length()
		before := PositionAt(route, depot, elapsed-1e-7)
		after := PositionAt(route, depot, elapsed+1e-7)
		assert.Less(t, before.Distance(after), 1e-6)
	}
}

func TestPositionAt_ZeroLengthEdge(t *testing.T) {
	route := model.Route{{X: 5, ID: 1}, {X: 5, ID: 2}}
	p := PositionAt(route, depot, 5)
	assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
	assertAt(t, model.Point{X: 5}, p)
	assertAt(t, depot, PositionAt(nil, depot, 3))
}

func TestArrivalEvents(t *testing.T) {
	fleet := model.Fleet{
		{{X: 3, ID: 1}},
		nil,
		{{Y: 10, ID: 2}, {X: 10, Y: 10, ID: 3}},
	}
	events := ArrivalEvents(fleet, depot)
	require.Len(t, events, 5)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].Time, events[i].Time)
	}
	for _, ev := range events {
		assert.NotEqual(t, 1, ev.Agent)
	}
	assert.Equal(t, ArrivalEvent{Time: 3, Agent: 0}, events[0])
}

func TestInstants_CollapsesDuplicates(t *testing.T) {
	events := []ArrivalEvent{{Time: 10, Agent: 0}, {Time: 10, Agent: 1}, {Time: 20, Agent: 1}, {Time: 3, Agent: 0}}
	assert.Equal(t, []float64{3, 10, 20}, Instants(events))
}

func TestSeparations(t *testing.T) {
	fleet := model.Fleet{
		{{X: 3, ID: 1}},
		{{Y: 10, ID: 2}},
	}
	records := Separations(fleet, depot)
	require.Len(t, records, 3)
	assert.InDelta(t, 3.0, records[0].Time, 1e-12)
	assert.InDelta(t, math.Sqrt(18), records[0].MaxDistance, 1e-9)
	assert.InDelta(t, 6.0, records[1].MaxDistance, 1e-9)
	assert.InDelta(t, 10.0, records[2].MaxDistance, 1e-9)
	for _, r := range records {
		assert.Greater(t, r.MaxDistance, 0.0)
	}

	crit, ok := Critical(records)
	require.True(t, ok)
	assert.InDelta(t, 10.0, crit.Time, 1e-12)
	for _, r := range records {
		assert.LessOrEqual(t, r.MaxDistance, crit.MaxDistance)
	}
}

func TestSeparations_SkipsCollocatedInstants(t *testing.T) {
	route := model.Route{{X: 10, ID: 1}}
	fleet := model.Fleet{route, append(model.Route(nil), route...)}
	assert.Empty(t, Separations(fleet, depot))
	assert.Empty(t, Separations(model.Fleet{route}, depot))

	_, ok := Critical(nil)
	assert.False(t, ok)
}

func TestCritical_EarliestWinsTies(t *testing.T) {
	crit, ok := Critical([]SeparationRecord{{Time: 1, MaxDistance: 2}, {Time: 2, MaxDistance: 5}, {Time: 3, MaxDistance: 5}})
	require.True(t, ok)
	assert.Equal(t, 2.0, crit.Time)
}

func TestAnalyze(t *testing.T) {
	fleet := model.Fleet{
		{{X: 3, ID: 1}},
		{{Y: 10, ID: 2}},
	}
	tests := []struct {
		radius   float64
		feasible bool
	}{
		{0, true},
		{5, false},
		{10, true},
	}
	for _, tt := range tests {
		rep := Analyze(fleet, depot, tt.radius)
		assert.Equal(t, tt.feasible, rep.Feasible, "radius %v", tt.radius)
		assert.Equal(t, 4, rep.Events)
		assert.Equal(t, 4, rep.Instants)
		assert.Len(t, rep.Records, 3)
		assert.True(t, rep.HasCritical)
		assert.InDelta(t, (math.Sqrt(18)+6+10)/3, rep.Mean, 1e-9)
	}
}
