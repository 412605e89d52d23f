package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/fleetroute/core/metrics"
)

func newTestSQLite(t *testing.T) *SQLiteSink {
	t.Helper()
	sink, err := NewSQLiteSink(filepath.Join(t.TempDir(), "db", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })
	return sink
}

func TestSQLiteSink_RunHistory(t *testing.T) {
	sink := newTestSQLite(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second"} {
		require.NoError(t, sink.RecordSolve(coremetrics.SolveEvent{
			RunID:     id,
			Agents:    2,
			Points:    10 + i,
			TotalCost: 100 + float64(i),
			Routes:    []coremetrics.RouteCost{{Agent: 0, Stops: 6, Cost: 60}, {Agent: 1, Stops: 4, Cost: 40}},
			Elapsed:   3 * time.Millisecond,
			Time:      base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, sink.RecordCoordination(coremetrics.CoordinationEvent{
		RunID:            "second",
		CriticalOffset:   12.5,
		CriticalDistance: 30,
		Radius:           20,
		Feasible:         false,
	}))

	runs, err := sink.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[0].RunID)
	assert.Equal(t, 11, runs[0].Points)
	assert.Equal(t, 3*time.Millisecond, runs[0].Elapsed)
	assert.True(t, base.Add(time.Minute).Equal(runs[0].Time))
	assert.Equal(t, 30.0, runs[0].CriticalDistance)
	assert.False(t, runs[0].Feasible)
	assert.True(t, runs[1].Feasible)

	limited, err := sink.Runs(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteSink_Separations(t *testing.T) {
	sink := newTestSQLite(t)
	require.NoError(t, sink.RecordSeparations([]coremetrics.SeparationEvent{
		{RunID: "r", Offset: 7, MaxDistance: 2},
		{RunID: "r", Offset: 3, MaxDistance: 5},
		{RunID: "other", Offset: 1, MaxDistance: 1},
	}))
	evs, err := sink.Separations("r")
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, 3.0, evs[0].Offset)
	assert.Equal(t, 5.0, evs[0].MaxDistance)
}
