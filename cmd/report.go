package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/fleetroute/core/planner"
)

func printReport(w io.Writer, res *planner.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", res.RunID)
	for agent, route := range res.Fleet {
		ids := make([]string, 0, len(route)+2)
		ids = append(ids, strconv.Itoa(res.Depot.ID))
		for _, id := range route.IDs() {
			ids = append(ids, strconv.Itoa(id))
		}
		ids = append(ids, strconv.Itoa(res.Depot.ID))
		fmt.Fprintf(&b, "agent %d: %s (cost %.3f)\n", agent, strings.Join(ids, " -> "), res.Costs[agent])
	}
	fmt.Fprintf(&b, "total cost: %.3f\n", res.TotalCost)

	rep := res.Report
	fmt.Fprintf(&b, "arrival instants: %d, separation records: %d", rep.Instants, len(rep.Records))
	if len(rep.Records) > 0 {
		fmt.Fprintf(&b, ", mean separation: %.3f", rep.Mean)
	}
	b.WriteString("\n")
	if rep.HasCritical {
		fmt.Fprintf(&b, "critical separation: time %.3f, max distance %.3f\n", rep.Critical.Time, rep.Critical.MaxDistance)
	} else {
		b.WriteString("critical separation: none\n")
	}
	if rep.Radius > 0 {
		verdict := "feasible"
		if !rep.Feasible {
			verdict = "infeasible"
		}
		fmt.Fprintf(&b, "radius %.3f: %s\n", rep.Radius, verdict)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
