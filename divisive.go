package pointlearn

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/yyyoichi/pointlearn/internal/kmeans"
	"github.com/yyyoichi/pointlearn/internal/maximin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Divisive grows clusters from two seeds. Each step promotes the sample
// lying farthest from its centroid to a new centroid while that distance
// exceeds half the mean distance between centroids. Centroids stay on the
// sample that spawned them.
type Divisive struct {
	id      uuid.UUID
	cfg     *config
	limiter *rate.Limiter
	log     *zap.Logger

	samples    []Point
	centers    []Point
	assignment []int
	last       maximin.Decision
	iteration  int
}

// NewDivisive seeds the first centroid on a random sample and the second on
// the sample farthest from it, then assigns the samples. The samples are
// copied.
func NewDivisive(samples []Point, opts ...Option) (*Divisive, error) {
	cfg, err := newConfig(DefaultClusterIterations, opts...)
	if err != nil {
		return nil, err
	}
	if len(samples) < 2 {
		return nil, configError("need at least 2 samples to seed two clusters, got %d", len(samples))
	}
	if err := checkPoints(samples); err != nil {
		return nil, err
	}

	first := cfg.rand.Intn(len(samples))
	seeds, dist := maximin.Bootstrap(samples, first)
	if dist == 0 {
		return nil, fmt.Errorf("%w: %w: all samples share one position", ErrInvalidConfig, ErrDegenerateGeometry)
	}

	d := &Divisive{
		id:         uuid.New(),
		cfg:        cfg,
		limiter:    newLimiter(cfg.pace),
		samples:    slices.Clone(samples),
		centers:    seeds[:],
		assignment: make([]int, len(samples)),
	}
	d.log = cfg.logger.With(zap.String("algorithm", "divisive"), zap.Stringer("run_id", d.id))
	if err := d.assign(); err != nil {
		return nil, err
	}
	d.log.Debug("initialized", zap.Int("samples", len(samples)), zap.Int("first", first))
	return d, nil
}

func (d *Divisive) assign() error {
	if err := kmeans.Assign(d.samples, d.centers, d.assignment); err != nil {
		return passError(err)
	}
	return nil
}

// Step assigns the samples, then splits off the farthest sample when it lies
// farther from its centroid than half the mean inter-centroid distance.
// It reports whether a centroid was added; the cluster count grows by at
// most one per step.
func (d *Divisive) Step() (bool, error) {
	if err := d.assign(); err != nil {
		return false, err
	}
	d.last = maximin.Evaluate(d.samples, d.centers, d.assignment)
	if d.last.Split {
		d.centers = append(d.centers, d.samples[d.last.At])
		if err := d.assign(); err != nil {
			return false, err
		}
	}
	d.iteration++

	d.log.Debug("step",
		zap.Int("iteration", d.iteration),
		zap.Int("clusters", len(d.centers)),
		zap.Float64("farthest", d.last.Farthest),
		zap.Float64("spread", d.last.Spread),
		zap.Bool("split", d.last.Split),
	)
	if d.cfg.onCluster != nil {
		d.cfg.onCluster(d.Snapshot())
	}
	return d.last.Split, nil
}

// Run steps until a step makes no split (Completed) or the iteration cap is
// reached (IterationCap).
func (d *Divisive) Run(ctx context.Context) (Result, error) {
	lr, err := loop(ctx, d.limiter, d.cfg.maxIterations, func() (bool, error) {
		grew, err := d.Step()
		return !grew, err
	})
	return finish(d.log, Result{RunID: d.id}, lr, err, Completed, IterationCap)
}

// RunID identifies this instance in logs and results.
func (d *Divisive) RunID() uuid.UUID { return d.id }

// Len returns the current number of centroids.
func (d *Divisive) Len() int { return len(d.centers) }

func (d *Divisive) Centroids() []Centroid {
	return centroids(d.centers, kmeans.Members(d.assignment, len(d.centers)))
}

func (d *Divisive) Assignment() []int { return slices.Clone(d.assignment) }

// Snapshot copies the current state.
func (d *Divisive) Snapshot() ClusterSnapshot {
	return ClusterSnapshot{
		RunID:      d.id,
		Iteration:  d.iteration,
		Centroids:  d.Centroids(),
		Assignment: d.Assignment(),
		Farthest:   d.last.Farthest,
		Spread:     d.last.Spread,
	}
}
