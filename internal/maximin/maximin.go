// Package maximin holds the split rules of farthest-point divisive clustering.
//
// Clusters grow one at a time: the sample lying farthest from its own center
// becomes a new center while that distance exceeds half the mean distance
// between the existing centers.
package maximin

import (
	"github.com/yyyoichi/pointlearn/internal/geom"
	"gonum.org/v1/gonum/mat"
)

// Bootstrap returns the two seed centers: the point at first, and the point
// farthest from it. dist is the distance between them.
func Bootstrap(points []geom.Point, first int) (seeds [2]geom.Point, dist float64) {
	seeds[0] = points[first]
	at, dist := geom.Farthest(seeds[0], points)
	seeds[1] = points[at]
	return seeds, dist
}

// FarthestMember returns the index of the point lying farthest from its
// assigned center, and that distance. The first point wins on ties.
// It returns -1 when there are no points.
func FarthestMember(points, centers []geom.Point, assignment []int) (int, float64) {
	best, max := -1, 0.0
	for i, p := range points {
		if d := geom.Distance(p, centers[assignment[i]]); best < 0 || d > max {
			best, max = i, d
		}
	}
	return best, max
}

// Spread returns half of the mean distance between distinct centers.
// ok is false with fewer than two centers.
func Spread(centers []geom.Point) (spread float64, ok bool) {
	n := len(centers)
	if n < 2 {
		return 0, false
	}
	dist := mat.NewSymDense(n, nil)
	for i := range n {
		for j := i + 1; j < n; j++ {
			dist.SetSym(i, j, geom.Distance(centers[i], centers[j]))
		}
	}
	// mat.Sum covers both triangles, i.e. every ordered pair.
	pairs := float64(n * (n - 1))
	return mat.Sum(dist) / pairs / 2, true
}

// Decision is the outcome of one split evaluation.
type Decision struct {
	Split    bool
	At       int     // index of the farthest point
	Farthest float64 // its distance to its own center
	Spread   float64 // zero with a single center
}

// Evaluate decides whether the farthest point should become a new center.
// With two or more centers it splits when Farthest > Spread. A single center
// splits whenever some point lies away from it.
func Evaluate(points, centers []geom.Point, assignment []int) Decision {
	at, far := FarthestMember(points, centers, assignment)
	d := Decision{At: at, Farthest: far}
	if at < 0 {
		return d
	}
	if spread, ok := Spread(centers); ok {
		d.Spread = spread
		d.Split = far > spread
		return d
	}
	d.Split = far > 0
	return d
}
