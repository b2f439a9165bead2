package pointlearn

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/yyyoichi/pointlearn/internal/geom"
	"github.com/yyyoichi/pointlearn/internal/kmeans"
	"github.com/yyyoichi/pointlearn/internal/perceptron"
)

type (
	// Point is a sample position on the plane.
	Point = geom.Point

	// Boundary is the decision line A*x + B*y + C = 0 learned by Perceptron.
	Boundary = perceptron.Boundary

	// Class labels a perceptron sample. ClassA belongs on the positive side
	// of the boundary, ClassB on the negative side.
	Class = perceptron.Class
)

const (
	ClassA = perceptron.ClassA
	ClassB = perceptron.ClassB
)

// DefaultBoundary is a starting line for Perceptron: 2x + 2y + 4 = 0.
var DefaultBoundary = Boundary{A: 2, B: 2, C: 4}

// Sample is a labelled perceptron input.
type Sample struct {
	Point
	Class Class
}

// Centroid is one cluster: its position and the indexes of the samples
// assigned to it by the latest assignment pass.
type Centroid struct {
	Label    int
	Position Point
	Members  []int
}

// ClusterSnapshot is the state of a clusterer after a step.
type ClusterSnapshot struct {
	RunID      uuid.UUID
	Iteration  int
	Centroids  []Centroid
	Assignment []int // sample index -> centroid label

	// Moves holds the displacement of each centroid in the last update
	// pass. Only KMeans fills it.
	Moves []float64

	// Farthest and Spread are the split inputs of the last Divisive step:
	// the largest sample-to-own-centroid distance and half the mean
	// inter-centroid distance.
	Farthest float64
	Spread   float64
}

// BoundarySnapshot is the state of a Perceptron after a step.
type BoundarySnapshot struct {
	RunID         uuid.UUID
	Iteration     int
	Boundary      Boundary
	Equation      string
	Misclassified int
	Picked        int  // index of the sample drawn by the last step, -1 before any step
	Updated       bool // whether that draw changed the boundary
}

func centroids(centers []Point, members [][]int) []Centroid {
	cs := make([]Centroid, len(centers))
	for i, c := range centers {
		cs[i] = Centroid{Label: i, Position: c, Members: slices.Clone(members[i])}
	}
	return cs
}

func checkPoints(points []Point) error {
	for i, p := range points {
		if !p.IsFinite() {
			return configError("sample %d is not finite: %v", i, p)
		}
	}
	return nil
}

// passError classifies an error from an assignment or update pass.
func passError(err error) error {
	if errors.Is(err, kmeans.ErrDegenerate) {
		return fmt.Errorf("%w: %w", ErrDegenerateGeometry, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
