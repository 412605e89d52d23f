package planner

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetroute/config"
	"github.com/kilianp07/fleetroute/core/metrics"
	"github.com/kilianp07/fleetroute/core/model"
	coremqtt "github.com/kilianp07/fleetroute/core/mqtt"
)

type fakeSink struct {
	solves       []metrics.SolveEvent
	separations  [][]metrics.SeparationEvent
	coordination []metrics.CoordinationEvent
	err          error
}

func (f *fakeSink) RecordSolve(ev metrics.SolveEvent) error {
	f.solves = append(f.solves, ev)
	return f.err
}

func (f *fakeSink) RecordSeparations(evs []metrics.SeparationEvent) error {
	f.separations = append(f.separations, evs)
	return f.err
}

func (f *fakeSink) RecordCoordination(ev metrics.CoordinationEvent) error {
	f.coordination = append(f.coordination, ev)
	return f.err
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishRoute(ctx context.Context, a coremqtt.RouteAssignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockPublisher) sent() []coremqtt.RouteAssignment {
	var out []coremqtt.RouteAssignment
	for _, c := range m.Calls {
		out = append(out, c.Arguments.Get(1).(coremqtt.RouteAssignment))
	}
	return out
}

func scenario() []model.Point {
	return []model.Point{
		{X: 0, Y: 0, ID: 0},
		{X: 10, Y: 0, ID: 1},
		{X: 0, Y: 10, ID: 2},
		{X: 10, Y: 10, ID: 3},
		{X: 5, Y: 5, ID: 4},
		{X: 20, Y: 3, ID: 5},
		{X: 7, Y: 18, ID: 6},
	}
}

func TestNew_NoAgents(t *testing.T) {
	_, err := New(config.SolverConfig{Agents: 0}, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoAgents)
}

func TestPlan_SingleAgent(t *testing.T) {
	p, err := New(config.SolverConfig{Agents: 1}, nil, nil, nil)
	require.NoError(t, err)
	res, err := p.Plan(context.Background(), scenario()[:5])
	require.NoError(t, err)
	require.Len(t, res.Fleet, 1)
	assert.Equal(t, []int{4, 1, 3, 2}, res.Fleet[0].IDs())
	assert.InDelta(t, 30+2*math.Sqrt(50), res.TotalCost, 1e-9)
	assert.False(t, res.Report.HasCritical)
	assert.True(t, res.Report.Feasible)
	assert.NotEmpty(t, res.RunID)
}

func TestPlan_RecordsAndPublishes(t *testing.T) {
	sink := &fakeSink{}
	pub := &mockPublisher{}
	pub.On("PublishRoute", mock.Anything, mock.AnythingOfType("mqtt.RouteAssignment")).Return(nil)
	p, err := New(config.SolverConfig{Agents: 2, Radius: 1}, nil, sink, pub)
	require.NoError(t, err)
	res, err := p.Plan(context.Background(), scenario())
	require.NoError(t, err)

	require.Len(t, sink.solves, 1)
	ev := sink.solves[0]
	assert.Equal(t, res.RunID, ev.RunID)
	assert.Equal(t, 2, ev.Agents)
	assert.Equal(t, 6, ev.Points)
	assert.InDelta(t, res.TotalCost, ev.TotalCost, 1e-9)
	require.Len(t, ev.Routes, 2)

	require.Len(t, sink.separations, 1)
	assert.Len(t, sink.separations[0], len(res.Report.Records))
	require.Len(t, sink.coordination, 1)
	assert.False(t, sink.coordination[0].Feasible)
	assert.Equal(t, res.Report.Critical.MaxDistance, sink.coordination[0].CriticalDistance)

	pub.AssertNumberOfCalls(t, "PublishRoute", 2)
	stops := 0
	for i, a := range pub.sent() {
		assert.Equal(t, i, a.Agent)
		assert.Equal(t, res.RunID, a.RunID)
		assert.Equal(t, 0, a.Depot.ID)
		stops += len(a.Stops)
	}
	assert.Equal(t, 6, stops)
}

func TestPlan_SinkErrorDoesNotFail(t *testing.T) {
	sink := &fakeSink{err: errors.New("down")}
	p, err := New(config.SolverConfig{Agents: 2}, nil, sink, nil)
	require.NoError(t, err)
	_, err = p.Plan(context.Background(), scenario())
	assert.NoError(t, err)
	assert.Len(t, sink.solves, 1)
}

func TestPlan_PublishError(t *testing.T) {
	boom := errors.New("broker gone")
	pub := &mockPublisher{}
	pub.On("PublishRoute", mock.Anything, mock.Anything).Return(boom).Once()
	p, err := New(config.SolverConfig{Agents: 2}, nil, nil, pub)
	require.NoError(t, err)
	res, err := p.Plan(context.Background(), scenario())
	assert.ErrorIs(t, err, boom)
	assert.NotNil(t, res)
	pub.AssertExpectations(t)
}

func TestPlan_InvalidInput(t *testing.T) {
	p, err := New(config.SolverConfig{Agents: 1}, nil, nil, nil)
	require.NoError(t, err)

	_, err = p.Plan(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoDepot)

	pts := scenario()
	pts[3].ID = 1
	_, err = p.Plan(context.Background(), pts)
	assert.ErrorIs(t, err, ErrDuplicateID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Plan(ctx, scenario())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssignment(t *testing.T) {
	route := model.Route{{X: 1, Y: 2, ID: 7}}
	a := Assignment("r", 3, model.Point{ID: 0}, route, 4.5, 100)
	assert.Equal(t, coremqtt.RouteAssignment{
		RunID:     "r",
		Agent:     3,
		Depot:     coremqtt.Waypoint{},
		Stops:     []coremqtt.Waypoint{{ID: 7, X: 1, Y: 2}},
		Cost:      4.5,
		Timestamp: 100,
	}, a)
}
