package instance

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/fleetroute/core/model"
)

type yamlInstance struct {
	Agents int         `yaml:"agents"`
	Radius float64     `yaml:"radius,omitempty"`
	Depot  yamlPoint   `yaml:"depot"`
	Points []yamlPoint `yaml:"points"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ParseYAML reads an instance written as YAML:
//
//	agents: 3
//	radius: 40
//	depot: {x: 50, y: 50}
//	points:
//	  - {x: 10, y: 20}
//
// Point IDs follow list order starting at 1; the depot is 0.
func ParseYAML(r io.Reader) (*Instance, error) {
	var doc yamlInstance
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrNoDepot
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}
	in := Instance{
		Agents: doc.Agents,
		Radius: doc.Radius,
		Points: make([]model.Point, 0, len(doc.Points)+1),
	}
	in.Points = append(in.Points, model.Point{X: doc.Depot.X, Y: doc.Depot.Y, ID: 0})
	for i, p := range doc.Points {
		in.Points = append(in.Points, model.Point{X: p.X, Y: p.Y, ID: i + 1})
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// WriteYAML serialises in in the format read by ParseYAML.
func WriteYAML(w io.Writer, in Instance) error {
	if err := in.Validate(); err != nil {
		return err
	}
	doc := yamlInstance{
		Agents: in.Agents,
		Radius: in.Radius,
		Depot:  yamlPoint{X: in.Depot().X, Y: in.Depot().Y},
		Points: make([]yamlPoint, 0, len(in.Points)-1),
	}
	for _, p := range in.Customers() {
		doc.Points = append(doc.Points, yamlPoint{X: p.X, Y: p.Y})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes in to path, as YAML for .yaml and .yml files and in the text
// format otherwise.
func Save(path string, in Instance) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if isYAML(path) {
		return WriteYAML(f, in)
	}
	return Write(f, in)
}
