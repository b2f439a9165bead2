package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point is a position on the plane.
type Point struct {
	X, Y float64
}

func (p Point) vec() []float64 { return []float64{p.X, p.Y} }

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return floats.Distance(a.vec(), b.vec(), 2)
}

// Nearest returns the index of the center closest to p and the distance to it.
// The first center wins on ties. It returns -1 when centers is empty.
func Nearest(p Point, centers []Point) (int, float64) {
	best, min := -1, math.Inf(1)
	for i, c := range centers {
		if d := Distance(p, c); d < min {
			best, min = i, d
		}
	}
	return best, min
}

// Farthest returns the index of the point farthest from p and the distance to it.
// The first point wins on ties. It returns -1 when points is empty.
func Farthest(p Point, points []Point) (int, float64) {
	best, max := -1, math.Inf(-1)
	for i, q := range points {
		if d := Distance(p, q); d > max {
			best, max = i, d
		}
	}
	return best, max
}
