package model

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a location in the plane identified by a stable external ID.
// The ID is independent of the point's position in any slice.
type Point struct {
	X  float64
	Y  float64
	ID int
}

// Vec returns the coordinates of p as a gonum vector.
func (p Point) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// At builds a Point from a vector, keeping the given ID.
func At(v r2.Vec, id int) Point { return Point{X: v.X, Y: v.Y, ID: id} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return r2.Norm(r2.Sub(p.Vec(), q.Vec()))
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 { return a.Distance(b) }

func (p Point) String() string {
	return fmt.Sprintf("#%d(%.3f, %.3f)", p.ID, p.X, p.Y)
}
