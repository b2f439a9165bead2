// Package pointlearn provides three learning procedures over 2-D samples:
// k-means refinement with a fixed cluster count (KMeans), farthest-point
// divisive clustering that picks its own cluster count (Divisive), and an
// online perceptron that learns a separating line (Perceptron).
//
// Every procedure exposes a synchronous Step and a Run loop. Run can be paced
// for display and stopped through its context; the state stays valid and a
// later Run resumes it. Instances are not safe for concurrent use.
package pointlearn

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidConfig wraps every rejected constructor argument or option.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDegenerateGeometry means a distance, a mean or a boundary left the
	// finite range.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Status is the terminal outcome of a Run.
type Status int

const (
	// Failed means a step returned an error.
	Failed Status = iota
	// Converged means the stopping criterion of the procedure was met:
	// centroids settled (KMeans) or every sample is classified correctly
	// (Perceptron).
	Converged
	// Completed means Divisive found no further split.
	Completed
	// IterationCap means the clustering loop hit its step limit first.
	IterationCap
	// NoSolution means the perceptron hit its step limit with samples still
	// misclassified.
	NoSolution
	// Canceled means the context ended the loop early.
	Canceled
)

func (s Status) String() string {
	switch s {
	case Failed:
		return "failed"
	case Converged:
		return "converged"
	case Completed:
		return "completed"
	case IterationCap:
		return "iteration cap reached without convergence"
	case NoSolution:
		return "no solution found"
	case Canceled:
		return "canceled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result summarizes one call to Run.
type Result struct {
	RunID      uuid.UUID
	Status     Status
	Iterations int // steps taken by this call
}

// Done reports whether the procedure met its own stopping criterion.
func (r Result) Done() bool {
	return r.Status == Converged || r.Status == Completed
}

// ClusterKMeans seeds k centroids from the samples, runs KMeans and returns
// the final centroids.
func ClusterKMeans(ctx context.Context, samples []Point, k int, opts ...Option) ([]Centroid, Result, error) {
	km, err := NewKMeans(samples, k, SeedFromSamples(), opts...)
	if err != nil {
		return nil, Result{}, err
	}
	res, err := km.Run(ctx)
	return km.Centroids(), res, err
}

// ClusterDivisive runs Divisive on the samples and returns the final centroids.
func ClusterDivisive(ctx context.Context, samples []Point, opts ...Option) ([]Centroid, Result, error) {
	d, err := NewDivisive(samples, opts...)
	if err != nil {
		return nil, Result{}, err
	}
	res, err := d.Run(ctx)
	return d.Centroids(), res, err
}

// Classify trains a perceptron from start and returns the final boundary.
func Classify(ctx context.Context, samples []Sample, start Boundary, opts ...Option) (Boundary, Result, error) {
	p, err := NewPerceptron(samples, start, opts...)
	if err != nil {
		return Boundary{}, Result{}, err
	}
	res, err := p.Run(ctx)
	return p.Boundary(), res, err
}
