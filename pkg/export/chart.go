package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/fleetroute/core/model"
	"github.com/kilianp07/fleetroute/core/timeline"
)

// Chart file names written by WriteDir.
const (
	RoutesChartFile      = "routes.html"
	SeparationsChartFile = "separations.html"
)

// RenderRoutes draws every agent's closed path, depot to depot, as an HTML
// chart.
func RenderRoutes(w io.Writer, title string, depot model.Point, fleet model.Fleet) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
	)
	for agent, r := range fleet {
		path := r.Path(depot)
		data := make([]opts.LineData, len(path))
		for i, p := range path {
			data[i] = opts.LineData{Value: []float64{p.X, p.Y}, Name: fmt.Sprint(p.ID)}
		}
		line.AddSeries(fmt.Sprintf("agent %d", agent), data)
	}
	return line.Render(w)
}

// RenderSeparations draws the maximum pairwise distance at each recorded
// instant.
func RenderSeparations(w io.Writer, title string, records []timeline.SeparationRecord) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "max distance", Type: "value"}),
	)
	data := make([]opts.LineData, len(records))
	for i, r := range records {
		data[i] = opts.LineData{Value: []float64{r.Time, r.MaxDistance}}
	}
	line.AddSeries("separation", data)
	return line.Render(w)
}
