package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/fleetroute/core/metrics"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	solves     prometheus.Counter
	totalCost  prometheus.Gauge
	routeCost  *prometheus.GaugeVec
	routeStops *prometheus.GaugeVec
	elapsed    prometheus.Histogram
	separation prometheus.Histogram
	critical   prometheus.Gauge
	feasible   prometheus.Gauge
}

// NewPromSink registers planning metrics on the default Prometheus registerer.
// The metrics endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.solves, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fleetroute_solves_total",
		Help: "Total number of completed route constructions",
	})); err != nil {
		return nil, err
	}
	if s.totalCost, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleetroute_total_cost",
		Help: "Summed route length of the last plan",
	})); err != nil {
		return nil, err
	}
	if s.routeCost, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fleetroute_route_cost",
		Help: "Route length per agent in the last plan",
	}, []string{"agent"})); err != nil {
		return nil, err
	}
	if s.routeStops, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fleetroute_route_stops",
		Help: "Number of points visited per agent in the last plan",
	}, []string{"agent"})); err != nil {
		return nil, err
	}
	if s.elapsed, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fleetroute_solve_duration_seconds",
		Help:    "Wall time spent constructing routes",
		Buckets: prometheus.DefBuckets,
	})); err != nil {
		return nil, err
	}
	if s.separation, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fleetroute_separation_distance",
		Help:    "Maximum pairwise agent distance at each arrival instant",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})); err != nil {
		return nil, err
	}
	if s.critical, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleetroute_critical_separation",
		Help: "Largest agent separation observed in the last plan",
	})); err != nil {
		return nil, err
	}
	if s.feasible, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleetroute_plan_feasible",
		Help: "1 when the last plan stayed within the communication radius",
	})); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds c to reg, reusing the existing collector when one with the
// same descriptor is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordSolve updates the cost gauges and the solve counter.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.solves.Inc()
	s.totalCost.Set(ev.TotalCost)
	s.elapsed.Observe(ev.Elapsed.Seconds())
	s.routeCost.Reset()
	s.routeStops.Reset()
	for _, r := range ev.Routes {
		agent := strconv.Itoa(r.Agent)
		s.routeCost.WithLabelValues(agent).Set(r.Cost)
		s.routeStops.WithLabelValues(agent).Set(float64(r.Stops))
	}
	return nil
}

// RecordSeparations observes every sampled separation.
func (s *PromSink) RecordSeparations(evs []coremetrics.SeparationEvent) error {
	for _, ev := range evs {
		s.separation.Observe(ev.MaxDistance)
	}
	return nil
}

// RecordCoordination sets the critical separation and feasibility gauges.
func (s *PromSink) RecordCoordination(ev coremetrics.CoordinationEvent) error {
	s.critical.Set(ev.CriticalDistance)
	if ev.Feasible {
		s.feasible.Set(1)
	} else {
		s.feasible.Set(0)
	}
	return nil
}
