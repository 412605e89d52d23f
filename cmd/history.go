package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fleetroute/infra/metrics"
)

func newHistoryCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)
	c := &cobra.Command{
		Use:   "history",
		Short: "List planning runs stored by the sqlite metrics sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := metrics.NewSQLiteSink(dbPath)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer func() { _ = store.Close() }()
			runs, err := store.Runs(limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tTIME\tAGENTS\tPOINTS\tTOTAL COST\tCRITICAL\tFEASIBLE")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.3f\t%.3f@%.3f\t%t\n",
					r.RunID, r.Time.Format("2006-01-02T15:04:05Z"), r.Agents, r.Points,
					r.TotalCost, r.CriticalDistance, r.CriticalOffset, r.Feasible)
			}
			return tw.Flush()
		},
	}
	c.Flags().StringVar(&dbPath, "db", "fleetroute.db", "sqlite database written by the sqlite metrics sink")
	c.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show, 0 for all")
	return c
}
