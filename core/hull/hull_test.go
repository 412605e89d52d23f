package hull

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetroute/core/model"
)

func ids(points []model.Point) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.ID
	}
	return out
}

func TestConvex_SquareWithInteriorPoint(t *testing.T) {
	a := model.Point{X: 10, Y: 0, ID: 1}
	b := model.Point{X: 0, Y: 10, ID: 2}
	c := model.Point{X: 10, Y: 10, ID: 3}
	d := model.Point{X: 5, Y: 5, ID: 4}

	h := Convex([]model.Point{a, b, c, d})
	assert.Equal(t, []int{1, 3, 2}, ids(h))
}

func TestConvex_FewerThanThree(t *testing.T) {
	tests := [][]model.Point{
		nil,
		{{X: 1, Y: 1, ID: 1}},
		{{X: 5, Y: 1, ID: 1}, {X: 0, Y: 0, ID: 2}},
	}
	for _, in := range tests {
		out := Convex(in)
		assert.Equal(t, len(in), len(out))
		assert.Equal(t, ids(in), ids(out))
	}
}

func TestConvex_DropsCollinearBoundaryPoints(t *testing.T) {
	pts := []model.Point{
		{X: 0, Y: 0, ID: 1},
		{X: 5, Y: 0, ID: 2},
		{X: 10, Y: 0, ID: 3},
		{X: 10, Y: 10, ID: 4},
		{X: 0, Y: 10, ID: 5},
	}
	assert.Equal(t, []int{1, 3, 4, 5}, ids(Convex(pts)))
}

func TestConvex_StartsAtLowestThenLeftmost(t *testing.T) {
	pts := []model.Point{
		{X: 4, Y: 0, ID: 1},
		{X: 2, Y: 0, ID: 2},
		{X: 3, Y: 5, ID: 3},
	}
	h := Convex(pts)
	require.NotEmpty(t, h)
	assert.Equal(t, 2, h[0].ID)
}

func TestConvex_ContainsAllPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pts := make([]model.Point, 200)
	for i := range pts {
		pts[i] = model.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100, ID: i + 1}
	}
	h := Convex(pts)
	require.GreaterOrEqual(t, len(h), 3)

	for i := range h {
		a, b, c := h[i], h[(i+1)%len(h)], h[(i+2)%len(h)]
		assert.Greater(t, Cross(a, b, c), 0.0, "hull must turn left at %v", b)
	}
	for _, p := range pts {
		for i := range h {
			a, b := h[i], h[(i+1)%len(h)]
			assert.GreaterOrEqual(t, Cross(a, b, p), 0.0, "point %v outside edge %v-%v", p, a, b)
		}
	}
}
