package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetroute/config"
	"github.com/kilianp07/fleetroute/instance"
)

func newGenerateCmd(cfgPath *string) *cobra.Command {
	var (
		output string
		gen    config.GeneratorConfig
		solver config.SolverConfig
	)
	c := &cobra.Command{
		Use:   "generate",
		Short: "Write a random instance file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("nodes") {
				cfg.Generator.Nodes = gen.Nodes
			}
			if flags.Changed("size") {
				cfg.Generator.Size = gen.Size
			}
			if flags.Changed("seed") {
				cfg.Generator.Seed = gen.Seed
			}
			if flags.Changed("agents") {
				cfg.Solver.Agents = solver.Agents
			}
			if flags.Changed("radius") {
				cfg.Solver.Radius = solver.Radius
			}
			if err := cfg.Generator.Validate(); err != nil {
				return fmt.Errorf("generator: %w", err)
			}
			if err := cfg.Solver.Validate(); err != nil {
				return fmt.Errorf("solver: %w", err)
			}
			inst := instance.Generate(cfg.Generator, cfg.Solver)
			if output == "" || output == "-" {
				return instance.Write(cmd.OutOrStdout(), inst)
			}
			return instance.Save(output, inst)
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "", "instance file to write (.yaml for YAML), stdout when empty")
	c.Flags().IntVar(&gen.Nodes, "nodes", 0, "number of points including the depot")
	c.Flags().Float64Var(&gen.Size, "size", 0, "side of the square points are drawn from")
	c.Flags().Int64Var(&gen.Seed, "seed", 0, "random seed")
	c.Flags().IntVar(&solver.Agents, "agents", 0, "number of agents stored in the file")
	c.Flags().Float64Var(&solver.Radius, "radius", 0, "communication radius stored in the file")
	return c
}
