// Package instance supplies problem instances: a depot plus the points the
// fleet must visit. Instances are either generated from a seed or read from
// a plain text file.
//
// File format: blank lines and lines starting with '#' are ignored. The first
// data line holds "k n r": the number of agents, the number of points to
// visit and the communication radius. It is followed by n+1 lines "x y", the
// first being the depot. Point IDs follow line order, the depot being 0.
// A YAML form is also accepted, see ParseYAML.
package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kilianp07/fleetroute/core/model"
)

// ErrNoDepot is returned for instances without any point.
var ErrNoDepot = errors.New("instance has no depot")

// MaxPoints bounds the point count a file header may declare.
const MaxPoints = 1_000_000

// Instance is a routing problem.
type Instance struct {
	Agents int
	Radius float64
	// Points holds the depot at index 0 followed by the points to visit.
	Points []model.Point
}

// Depot returns the shared start and end point.
func (in Instance) Depot() model.Point { return in.Points[0] }

// Customers returns the points to visit, excluding the depot.
func (in Instance) Customers() []model.Point { return in.Points[1:] }

// Validate checks that the instance can be solved.
func (in Instance) Validate() error {
	if len(in.Points) == 0 {
		return ErrNoDepot
	}
	if in.Agents < 0 {
		return fmt.Errorf("agents must not be negative, got %d", in.Agents)
	}
	if in.Radius < 0 {
		return fmt.Errorf("radius must not be negative, got %v", in.Radius)
	}
	return nil
}

// Load reads an instance file. Files ending in .yaml or .yml are read with
// ParseYAML, anything else with Parse.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	parse := Parse
	if isYAML(path) {
		parse = ParseYAML
	}
	in, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Parse reads an instance from r.
func Parse(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	var (
		in     Instance
		header bool
		want   int
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if !header {
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: header needs \"k n r\", got %q", lineNo, line)
			}
			k, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: agents: %w", lineNo, err)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: points: %w", lineNo, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("line %d: negative point count %d", lineNo, n)
			}
			if n > MaxPoints {
				return nil, fmt.Errorf("line %d: point count %d exceeds %d", lineNo, n, MaxPoints)
			}
			radius, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: radius: %w", lineNo, err)
			}
			in.Agents, in.Radius, want = k, radius, n+1
			in.Points = make([]model.Point, 0, min(want, 1024))
			header = true
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: coordinates need \"x y\", got %q", lineNo, line)
		}
		if len(in.Points) == want {
			return nil, fmt.Errorf("line %d: more than %d coordinate lines", lineNo, want)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: x: %w", lineNo, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: y: %w", lineNo, err)
		}
		in.Points = append(in.Points, model.Point{X: x, Y: y, ID: len(in.Points)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !header {
		return nil, ErrNoDepot
	}
	if len(in.Points) != want {
		return nil, fmt.Errorf("expected %d coordinate lines, got %d", want, len(in.Points))
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// Write serialises in in the format read by Parse. Point IDs are not
// written; they are implied by line order.
func Write(w io.Writer, in Instance) error {
	if err := in.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# agents points radius\n%d %d %s\n", in.Agents, len(in.Points)-1, formatFloat(in.Radius))
	fmt.Fprintln(bw, "# depot first")
	for _, p := range in.Points {
		fmt.Fprintf(bw, "%s %s\n", formatFloat(p.X), formatFloat(p.Y))
	}
	return bw.Flush()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
