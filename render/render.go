// Package render draws clustering and perceptron snapshots as PNG images
// (gonum/plot) or interactive HTML pages (go-echarts).
package render

import (
	"errors"
	"fmt"

	"github.com/yyyoichi/pointlearn"
)

var ErrMismatch = errors.New("snapshot does not match samples")

// groups splits the sample indexes by assigned centroid.
func groups(samples []pointlearn.Point, snap pointlearn.ClusterSnapshot) ([][]pointlearn.Point, error) {
	if len(snap.Assignment) != len(samples) {
		return nil, fmt.Errorf("%w: %d assignments for %d samples", ErrMismatch, len(snap.Assignment), len(samples))
	}
	out := make([][]pointlearn.Point, len(snap.Centroids))
	for i, label := range snap.Assignment {
		if label < 0 || label >= len(out) {
			return nil, fmt.Errorf("%w: sample %d assigned to unknown centroid %d", ErrMismatch, i, label)
		}
		out[label] = append(out[label], samples[i])
	}
	return out, nil
}

func byClass(samples []pointlearn.Sample) (a, b []pointlearn.Point) {
	for _, s := range samples {
		switch s.Class {
		case pointlearn.ClassA:
			a = append(a, s.Point)
		case pointlearn.ClassB:
			b = append(b, s.Point)
		}
	}
	return a, b
}

func clusterTitle(snap pointlearn.ClusterSnapshot) string {
	return fmt.Sprintf("iteration %d, %d clusters", snap.Iteration, len(snap.Centroids))
}

func boundaryTitle(snap pointlearn.BoundarySnapshot) string {
	return fmt.Sprintf("iteration %d: %s", snap.Iteration, snap.Equation)
}
