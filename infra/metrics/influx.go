package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/fleetroute/core/metrics"
	"github.com/kilianp07/fleetroute/infra/logger"
)

// InfluxSink writes planning runs to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSolve writes one point for the plan and one per route.
func (s *InfluxSink) RecordSolve(ev coremetrics.SolveEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(ev.Routes)+1)
	points = append(points, write.NewPointWithMeasurement("plan").
		AddTag("run_id", ev.RunID).
		AddField("agents", ev.Agents).
		AddField("points", ev.Points).
		AddField("total_cost", round3(ev.TotalCost)).
		AddField("elapsed_ms", ev.Elapsed.Milliseconds()).
		SetTime(ev.Time))
	for _, r := range ev.Routes {
		points = append(points, write.NewPointWithMeasurement("route").
			AddTag("run_id", ev.RunID).
			AddTag("agent", strconv.Itoa(r.Agent)).
			AddField("stops", r.Stops).
			AddField("cost", round3(r.Cost)).
			SetTime(ev.Time))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordSeparations writes the separation timeline. Each point is stamped
// with the run time shifted by the simulated offset, so a run reads as a
// time series in InfluxDB.
func (s *InfluxSink) RecordSeparations(evs []coremetrics.SeparationEvent) error {
	if len(evs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, len(evs))
	for i, ev := range evs {
		points[i] = write.NewPointWithMeasurement("separation").
			AddTag("run_id", ev.RunID).
			AddField("offset", round3(ev.Offset)).
			AddField("max_distance", round3(ev.MaxDistance)).
			SetTime(ev.Time.Add(offsetDuration(ev.Offset)))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordCoordination writes the critical separation of a run.
func (s *InfluxSink) RecordCoordination(ev coremetrics.CoordinationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("coordination").
		AddTag("run_id", ev.RunID).
		AddTag("feasible", strconv.FormatBool(ev.Feasible)).
		AddField("critical_offset", round3(ev.CriticalOffset)).
		AddField("critical_distance", round3(ev.CriticalDistance)).
		AddField("radius", round3(ev.Radius)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

// offsetDuration maps one unit of simulated travel time to one second.
func offsetDuration(offset float64) time.Duration {
	return time.Duration(offset * float64(time.Second))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
