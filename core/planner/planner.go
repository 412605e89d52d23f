// Package planner runs a full planning pass: route construction, separation
// analysis, metrics recording and route dispatch.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/fleetroute/config"
	"github.com/kilianp07/fleetroute/core/cost"
	"github.com/kilianp07/fleetroute/core/logger"
	"github.com/kilianp07/fleetroute/core/metrics"
	"github.com/kilianp07/fleetroute/core/model"
	coremqtt "github.com/kilianp07/fleetroute/core/mqtt"
	"github.com/kilianp07/fleetroute/core/routing"
	"github.com/kilianp07/fleetroute/core/timeline"
)

var (
	// ErrNoAgents is returned when the fleet has no agent to route.
	ErrNoAgents = errors.New("planner: at least one agent is required")
	// ErrNoDepot is returned when Plan receives no points.
	ErrNoDepot = errors.New("planner: no depot")
	// ErrDuplicateID is returned when two points share an identifier.
	ErrDuplicateID = errors.New("planner: duplicate point id")
)

// Result is the outcome of one planning pass.
type Result struct {
	RunID     string
	Depot     model.Point
	Points    []model.Point
	Fleet     model.Fleet
	Costs     []float64
	TotalCost float64
	Report    timeline.Report
	Elapsed   time.Duration
}

// Planner ties the routing core to its sinks and publisher.
type Planner struct {
	cfg       config.SolverConfig
	log       logger.Logger
	sink      metrics.MetricsSink
	publisher coremqtt.Publisher
	builder   *routing.Constructor
	now       func() time.Time
}

// New creates a Planner. sink and publisher may be nil.
func New(cfg config.SolverConfig, log logger.Logger, sink metrics.MetricsSink, publisher coremqtt.Publisher) (*Planner, error) {
	if cfg.Agents < 1 {
		return nil, ErrNoAgents
	}
	log = logger.OrNop(log)
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{
		cfg:       cfg,
		log:       log,
		sink:      sink,
		publisher: publisher,
		builder:   routing.New(log),
		now:       time.Now,
	}, nil
}

// Plan routes points[1:] from the depot points[0]. Metrics failures are
// logged and do not fail the run; publishing failures do.
func (p *Planner) Plan(ctx context.Context, points []model.Point) (*Result, error) {
	if len(points) == 0 {
		return nil, ErrNoDepot
	}
	if err := checkIDs(points); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	depot, customers := points[0], points[1:]

	start := p.now()
	fleet := p.builder.Build(depot, customers, p.cfg.Agents)
	rep := timeline.Analyze(fleet, depot, p.cfg.Radius)
	res := &Result{
		RunID:     uuid.NewString(),
		Depot:     depot,
		Points:    points,
		Fleet:     fleet,
		Costs:     cost.PerAgent(fleet, depot),
		TotalCost: cost.Total(fleet, depot),
		Report:    rep,
		Elapsed:   p.now().Sub(start),
	}
	p.log.Infof("run %s: %d points on %d agents, total cost %.3f", res.RunID, len(customers), len(fleet), res.TotalCost)
	if rep.HasCritical {
		p.log.Infof("run %s: critical separation %.3f at t=%.3f", res.RunID, rep.Critical.MaxDistance, rep.Critical.Time)
	}
	if !rep.Feasible {
		p.log.Warnf("run %s: fleet spreads to %.3f beyond radius %.3f", res.RunID, rep.Critical.MaxDistance, rep.Radius)
	}

	p.record(res)
	if err := p.publish(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

func checkIDs(points []model.Point) error {
	seen := make(map[int]struct{}, len(points))
	for _, pt := range points {
		if _, dup := seen[pt.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, pt.ID)
		}
		seen[pt.ID] = struct{}{}
	}
	return nil
}

func (p *Planner) record(res *Result) {
	now := p.now()
	routes := make([]metrics.RouteCost, len(res.Fleet))
	for i, r := range res.Fleet {
		routes[i] = metrics.RouteCost{Agent: i, Stops: len(r), Cost: res.Costs[i]}
	}
	ev := metrics.SolveEvent{
		RunID:     res.RunID,
		Agents:    len(res.Fleet),
		Points:    len(res.Points) - 1,
		TotalCost: res.TotalCost,
		Routes:    routes,
		Elapsed:   res.Elapsed,
		Time:      now,
	}
	if err := p.sink.RecordSolve(ev); err != nil {
		p.log.Errorf("record solve: %v", err)
	}
	if rec, ok := p.sink.(metrics.SeparationRecorder); ok && len(res.Report.Records) > 0 {
		evs := make([]metrics.SeparationEvent, len(res.Report.Records))
		for i, r := range res.Report.Records {
			evs[i] = metrics.SeparationEvent{RunID: res.RunID, Offset: r.Time, MaxDistance: r.MaxDistance, Time: now}
		}
		if err := rec.RecordSeparations(evs); err != nil {
			p.log.Errorf("record separations: %v", err)
		}
	}
	if rec, ok := p.sink.(metrics.CoordinationRecorder); ok && res.Report.HasCritical {
		ev := metrics.CoordinationEvent{
			RunID:            res.RunID,
			CriticalOffset:   res.Report.Critical.Time,
			CriticalDistance: res.Report.Critical.MaxDistance,
			Radius:           res.Report.Radius,
			Feasible:         res.Report.Feasible,
			Time:             now,
		}
		if err := rec.RecordCoordination(ev); err != nil {
			p.log.Errorf("record coordination: %v", err)
		}
	}
}

func (p *Planner) publish(ctx context.Context, res *Result) error {
	if p.publisher == nil {
		return nil
	}
	ts := p.now().Unix()
	for agent, route := range res.Fleet {
		a := Assignment(res.RunID, agent, res.Depot, route, res.Costs[agent], ts)
		if err := p.publisher.PublishRoute(ctx, a); err != nil {
			return fmt.Errorf("publish route for agent %d: %w", agent, err)
		}
		p.log.Debugw("route published", map[string]any{"run_id": res.RunID, "agent": agent, "stops": len(route)})
	}
	return nil
}

// Assignment converts an agent's route into the payload sent over MQTT.
func Assignment(runID string, agent int, depot model.Point, route model.Route, routeCost float64, ts int64) coremqtt.RouteAssignment {
	stops := make([]coremqtt.Waypoint, len(route))
	for i, pt := range route {
		stops[i] = waypoint(pt)
	}
	return coremqtt.RouteAssignment{
		RunID:     runID,
		Agent:     agent,
		Depot:     waypoint(depot),
		Stops:     stops,
		Cost:      routeCost,
		Timestamp: ts,
	}
}

func waypoint(p model.Point) coremqtt.Waypoint {
	return coremqtt.Waypoint{ID: p.ID, X: p.X, Y: p.Y}
}
