// Package cmd implements the fleetroute command line.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the fleetroute command tree.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "fleetroute",
		Short:         "Multi-agent depot routing with separation analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON)")
	root.AddCommand(newSolveCmd(&cfgPath), newGenerateCmd(&cfgPath), newHistoryCmd())
	return root
}

// Execute runs the CLI.
func Execute() error { return NewRootCmd().Execute() }
