package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetroute/config"
	coremetrics "github.com/kilianp07/fleetroute/core/metrics"
	coremqtt "github.com/kilianp07/fleetroute/core/mqtt"
	"github.com/kilianp07/fleetroute/core/planner"
	"github.com/kilianp07/fleetroute/infra/logger"
	"github.com/kilianp07/fleetroute/infra/metrics"
	"github.com/kilianp07/fleetroute/infra/mqtt"
	"github.com/kilianp07/fleetroute/instance"
	"github.com/kilianp07/fleetroute/pkg/export"
)

type solveOpts struct {
	agents   int
	radius   float64
	instance string
	export   string
}

func newSolveCmd(cfgPath *string) *cobra.Command {
	var opts solveOpts
	c := &cobra.Command{
		Use:   "solve",
		Short: "Build routes for a generated or loaded instance and report the critical separation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSolve(ctx, cmd, *cfgPath, opts)
		},
	}
	c.Flags().IntVar(&opts.agents, "agents", 0, "number of agents (overrides config and instance file)")
	c.Flags().Float64Var(&opts.radius, "radius", 0, "communication radius, 0 disables the check")
	c.Flags().StringVar(&opts.instance, "instance", "", "instance file to solve instead of generating one")
	c.Flags().StringVar(&opts.export, "export", "", "directory receiving plan.json, routes.csv and separations.csv")
	return c
}

func runSolve(ctx context.Context, cmd *cobra.Command, cfgPath string, opts solveOpts) error {
	log := logger.New("solve")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("instance") {
		cfg.Instance.Path = opts.instance
	}
	if flags.Changed("export") {
		cfg.Export.Dir = opts.export
	}

	inst, err := loadInstance(cfg)
	if err != nil {
		return err
	}
	solver := cfg.Solver
	if cfg.Instance.Path != "" {
		if inst.Agents > 0 {
			solver.Agents = inst.Agents
		}
		if inst.Radius > 0 {
			solver.Radius = inst.Radius
		}
	}
	if flags.Changed("agents") {
		solver.Agents = opts.agents
	}
	if flags.Changed("radius") {
		solver.Radius = opts.radius
	}
	if err := solver.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	defer closeSink(sink, log)

	var pub coremqtt.Publisher
	if cfg.MQTT.Enabled() {
		p, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("mqtt publisher: %w", err)
		}
		defer func() {
			if err := p.Close(); err != nil {
				log.Errorf("mqtt close: %v", err)
			}
		}()
		pub = p
	}

	pl, err := planner.New(solver, log, sink, pub)
	if err != nil {
		return err
	}
	res, err := pl.Plan(ctx, inst.Points)
	if err != nil {
		return err
	}
	if err := printReport(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	if cfg.Export.Dir != "" {
		plan := export.NewPlan(res.RunID, res.Depot, res.Points, res.Fleet, res.Report)
		if err := export.WriteDir(cfg.Export.Dir, plan, res.Fleet, res.Report.Records); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		log.Infof("plan exported to %s", cfg.Export.Dir)
	}

	if cfg.Metrics.PrometheusAddr != "" {
		return metrics.StartPromServer(ctx, cfg.Metrics.PrometheusAddr)
	}
	return nil
}

func loadInstance(cfg *config.Config) (*instance.Instance, error) {
	if cfg.Instance.Path != "" {
		inst, err := instance.Load(cfg.Instance.Path)
		if err != nil {
			return nil, fmt.Errorf("load instance: %w", err)
		}
		return inst, nil
	}
	if err := cfg.Generator.Validate(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	inst := instance.Generate(cfg.Generator, cfg.Solver)
	return &inst, nil
}

func closeSink(sink coremetrics.MetricsSink, log logger.Logger) {
	sinks := []coremetrics.MetricsSink{sink}
	if m, ok := sink.(*coremetrics.MultiSink); ok {
		sinks = m.Sinks
	}
	for _, s := range sinks {
		switch c := s.(type) {
		case io.Closer:
			if err := c.Close(); err != nil {
				log.Errorf("close sink: %v", err)
			}
		case interface{ Close() }:
			c.Close()
		}
	}
}
