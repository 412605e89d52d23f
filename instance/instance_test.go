package instance

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetroute/config"
	"github.com/kilianp07/fleetroute/core/model"
)

const sample = `# two agents, three points, radius 25
2 3 25

0 0
10 0
0 10
# interior
5.5 5
`

func TestParse(t *testing.T) {
	in, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 2, in.Agents)
	assert.Equal(t, 25.0, in.Radius)
	require.Len(t, in.Points, 4)
	assert.Equal(t, model.Point{X: 0, Y: 0, ID: 0}, in.Depot())
	assert.Equal(t, model.Point{X: 5.5, Y: 5, ID: 3}, in.Points[3])
	assert.Len(t, in.Customers(), 3)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":           "# nothing\n",
		"short header":    "2 3\n",
		"bad agents":      "x 0 1\n0 0\n",
		"bad radius":      "1 0 r\n0 0\n",
		"negative count":  "1 -1 0\n",
		"too few":         "1 2 0\n0 0\n1 1\n",
		"too many":        "1 0 0\n0 0\n1 1\n",
		"bad coordinate":  "1 0 0\n0 y\n",
		"three columns":   "1 0 0\n0 0 0\n",
		"negative agent":  "-1 0 0\n0 0\n",
		"count overflow":  "1 9223372036854775807 0\n0 0\n",
		"count too large": "1 2000000000000 0\n0 0\n",
		"count above max": "1 1000001 0\n0 0\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(data))
			assert.Error(t, err)
		})
	}
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoDepot)

	_, err = Parse(strings.NewReader("# header\n1 2000000000000 0\n"))
	assert.ErrorContains(t, err, "line 2: point count 2000000000000 exceeds")
}

func TestWriteThenLoad(t *testing.T) {
	in := Generate(config.GeneratorConfig{Nodes: 12, Size: 50, Seed: 3}, config.SolverConfig{Agents: 2, Radius: 30})
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))

	path := filepath.Join(t.TempDir(), "instance.txt")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, *got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.ErrorIs(t, Write(&buf, Instance{}), ErrNoDepot)
}

func TestGenerate(t *testing.T) {
	cfg := config.GeneratorConfig{Nodes: 40, Size: 100, Seed: 9}
	a := Generate(cfg, config.SolverConfig{Agents: 3})
	b := Generate(cfg, config.SolverConfig{Agents: 3})
	assert.Equal(t, a, b)
	require.Len(t, a.Points, 40)
	for i, p := range a.Points {
		assert.Equal(t, i, p.ID)
		assert.True(t, p.X >= 0 && p.X < 100 && p.Y >= 0 && p.Y < 100)
	}

	c := Generate(config.GeneratorConfig{Nodes: 40, Size: 100, Seed: 10}, config.SolverConfig{Agents: 3})
	assert.NotEqual(t, a.Points, c.Points)
}

func TestParseYAML(t *testing.T) {
	in, err := ParseYAML(strings.NewReader(`
agents: 2
radius: 15
depot: {x: 1, y: 2}
points:
  - {x: 10, y: 0}
  - {x: 0, y: 10}
`))
	require.NoError(t, err)
	assert.Equal(t, 2, in.Agents)
	assert.Equal(t, 15.0, in.Radius)
	assert.Equal(t, []model.Point{{X: 1, Y: 2, ID: 0}, {X: 10, ID: 1}, {Y: 10, ID: 2}}, in.Points)

	_, err = ParseYAML(strings.NewReader("agents: 1\nunknown: true\n"))
	assert.Error(t, err)
	_, err = ParseYAML(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoDepot)
	_, err = ParseYAML(strings.NewReader("agents: -1\ndepot: {x: 0, y: 0}\n"))
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	in := Generate(config.GeneratorConfig{Nodes: 8, Size: 20, Seed: 5}, config.SolverConfig{Agents: 3, Radius: 12.5})
	for _, name := range []string{"instance.yaml", "instance.yml", "instance.txt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, in))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, in, *got)
		})
	}
}
