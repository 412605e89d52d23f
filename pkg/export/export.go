// Package export writes plans in formats consumed by plotting and
// spreadsheet tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kilianp07/fleetroute/core/cost"
	"github.com/kilianp07/fleetroute/core/model"
	"github.com/kilianp07/fleetroute/core/timeline"
)

// Data file names written by WriteDir.
const (
	PlanFile        = "plan.json"
	RoutesFile      = "routes.csv"
	SeparationsFile = "separations.csv"
)

// Plan is the JSON form of a solved instance.
type Plan struct {
	RunID     string      `json:"run_id"`
	Depot     Stop        `json:"depot"`
	Points    []Stop      `json:"points"`
	Routes    []RoutePlan `json:"routes"`
	TotalCost float64     `json:"total_cost"`
	Critical  *Critical   `json:"critical,omitempty"`
	Radius    float64     `json:"radius,omitempty"`
	Feasible  bool        `json:"feasible"`
}

// Stop is one point of the plan.
type Stop struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// RoutePlan is one agent's route.
type RoutePlan struct {
	Agent int     `json:"agent"`
	Order []int   `json:"order"`
	Cost  float64 `json:"cost"`
}

// Critical is the worst separation of the fleet.
type Critical struct {
	Time        float64 `json:"time"`
	MaxDistance float64 `json:"max_distance"`
}

// NewPlan assembles the JSON plan from a fleet and its analysis.
func NewPlan(runID string, depot model.Point, points []model.Point, fleet model.Fleet, rep timeline.Report) Plan {
	p := Plan{
		RunID:     runID,
		Depot:     stop(depot),
		Points:    make([]Stop, len(points)),
		Routes:    make([]RoutePlan, len(fleet)),
		TotalCost: cost.Total(fleet, depot),
		Radius:    rep.Radius,
		Feasible:  rep.Feasible,
	}
	for i, pt := range points {
		p.Points[i] = stop(pt)
	}
	for i, r := range fleet {
		p.Routes[i] = RoutePlan{Agent: i, Order: r.IDs(), Cost: cost.Partial(r, depot)}
	}
	if rep.HasCritical {
		p.Critical = &Critical{Time: rep.Critical.Time, MaxDistance: rep.Critical.MaxDistance}
	}
	return p
}

func stop(p model.Point) Stop { return Stop{ID: p.ID, X: p.X, Y: p.Y} }

// WritePlanJSON writes the plan to w in indented JSON format.
func WritePlanJSON(w io.Writer, plan Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// WriteRoutesCSV writes one row per visited point, depot legs excluded.
func WriteRoutesCSV(w io.Writer, fleet model.Fleet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"agent", "position", "point_id", "x", "y"}); err != nil {
		return err
	}
	for agent, r := range fleet {
		for pos, p := range r {
			rec := []string{
				strconv.Itoa(agent),
				strconv.Itoa(pos),
				strconv.Itoa(p.ID),
				formatFloat(p.X),
				formatFloat(p.Y),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeparationsCSV writes the separation timeline.
func WriteSeparationsCSV(w io.Writer, records []timeline.SeparationRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "max_distance"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{formatFloat(r.Time), formatFloat(r.MaxDistance)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDir writes the plan, its routes and its separation timeline into dir
// as JSON, CSV and HTML charts, creating dir if needed.
func WriteDir(dir string, plan Plan, fleet model.Fleet, records []timeline.SeparationRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	depot := model.Point{X: plan.Depot.X, Y: plan.Depot.Y, ID: plan.Depot.ID}
	title := fmt.Sprintf("run %s, total cost %.3f", plan.RunID, plan.TotalCost)
	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{PlanFile, func(w io.Writer) error { return WritePlanJSON(w, plan) }},
		{RoutesFile, func(w io.Writer) error { return WriteRoutesCSV(w, fleet) }},
		{SeparationsFile, func(w io.Writer) error { return WriteSeparationsCSV(w, records) }},
		{RoutesChartFile, func(w io.Writer) error { return RenderRoutes(w, title, depot, fleet) }},
		{SeparationsChartFile, func(w io.Writer) error { return RenderSeparations(w, title, records) }},
	}
	for _, wr := range writers {
		if err := writeFile(filepath.Join(dir, wr.name), wr.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
