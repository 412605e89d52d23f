// Package hull computes convex hulls with a Graham scan.
package hull

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/kilianp07/fleetroute/core/model"
)

// Cross returns the z component of (b-a) x (c-a). It is positive when a, b, c
// make a strict left turn.
func Cross(a, b, c model.Point) float64 {
	return r2.Cross(r2.Sub(b.Vec(), a.Vec()), r2.Sub(c.Vec(), a.Vec()))
}

// Convex returns the convex hull of points in counter-clockwise order,
// starting from the lowest point (lowest x on ties).
//
// Collinear points are dropped: a zero cross product pops the middle point,
// so the hull never holds three consecutive collinear vertices. Inputs with
// fewer than three points are returned unchanged.
func Convex(points []model.Point) []model.Point {
	if len(points) < 3 {
		return append([]model.Point(nil), points...)
	}
	start := points[0]
	for _, p := range points[1:] {
		if p.Y < start.Y || (p.Y == start.Y && p.X < start.X) {
			start = p
		}
	}

	sorted := append([]model.Point(nil), points...)
	angle := func(p model.Point) float64 { return math.Atan2(p.Y-start.Y, p.X-start.X) }
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := angle(sorted[i]), angle(sorted[j])
		if ai != aj {
			return ai < aj
		}
		return sorted[i].Distance(start) < sorted[j].Distance(start)
	})

	out := make([]model.Point, 0, len(sorted))
	for _, p := range sorted {
		for len(out) >= 2 && Cross(out[len(out)-2], out[len(out)-1], p) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, p)
	}
	return out
}
