package pointlearn

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"github.com/google/uuid"
	"github.com/yyyoichi/pointlearn/internal/kmeans"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SeedFunc places the k initial centroids of a KMeans.
type SeedFunc func(k int, samples []Point, rd *rand.Rand) ([]Point, error)

// SeedFromSamples starts the centroids on k distinct samples drawn at random.
func SeedFromSamples() SeedFunc {
	return func(k int, samples []Point, rd *rand.Rand) ([]Point, error) {
		if k > len(samples) {
			return nil, fmt.Errorf("cannot pick %d distinct samples out of %d", k, len(samples))
		}
		perm := rd.Perm(len(samples))
		centers := make([]Point, k)
		for i := range k {
			centers[i] = samples[perm[i]]
		}
		return centers, nil
	}
}

// SeedUniform starts the centroids at uniformly random positions inside a
// width x height canvas anchored at the origin.
func SeedUniform(width, height float64) SeedFunc {
	return func(k int, _ []Point, rd *rand.Rand) ([]Point, error) {
		if !(width > 0 && height > 0) {
			return nil, fmt.Errorf("canvas %vx%v must have positive size", width, height)
		}
		centers := make([]Point, k)
		for i := range centers {
			centers[i] = Point{X: rd.Float64() * width, Y: rd.Float64() * height}
		}
		return centers, nil
	}
}

// SeedAt starts the centroids at the given positions.
func SeedAt(positions ...Point) SeedFunc {
	return func(k int, _ []Point, _ *rand.Rand) ([]Point, error) {
		if len(positions) != k {
			return nil, fmt.Errorf("got %d seed positions for %d clusters", len(positions), k)
		}
		return slices.Clone(positions), nil
	}
}

// KMeans refines a fixed number of centroids: every step assigns each sample
// to its nearest centroid, then moves each centroid to the mean of its
// members.
type KMeans struct {
	id      uuid.UUID
	cfg     *config
	limiter *rate.Limiter
	log     *zap.Logger

	samples    []Point
	centers    []Point
	assignment []int
	moves      []float64
	iteration  int
}

// NewKMeans creates k centroids placed by seed (SeedFromSamples when nil)
// and assigns the samples to them. The samples are copied.
func NewKMeans(samples []Point, k int, seed SeedFunc, opts ...Option) (*KMeans, error) {
	cfg, err := newConfig(DefaultClusterIterations, opts...)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, configError("no samples")
	}
	if k <= 0 {
		return nil, configError("cluster count must be positive, got %d", k)
	}
	if err := checkPoints(samples); err != nil {
		return nil, err
	}
	if seed == nil {
		seed = SeedFromSamples()
	}
	centers, err := seed(k, samples, cfg.rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(centers) != k {
		return nil, configError("seed returned %d centroids, want %d", len(centers), k)
	}
	if err := checkPoints(centers); err != nil {
		return nil, err
	}

	km := &KMeans{
		id:         uuid.New(),
		cfg:        cfg,
		limiter:    newLimiter(cfg.pace),
		samples:    slices.Clone(samples),
		centers:    centers,
		assignment: make([]int, len(samples)),
		moves:      make([]float64, k),
	}
	km.log = cfg.logger.With(zap.String("algorithm", "kmeans"), zap.Stringer("run_id", km.id))
	if err := kmeans.Assign(km.samples, km.centers, km.assignment); err != nil {
		return nil, passError(err)
	}
	km.log.Debug("initialized", zap.Int("samples", len(samples)), zap.Int("clusters", k))
	return km, nil
}

// Step runs one assignment pass and one update pass and returns the largest
// centroid displacement of the update. Distances or means that leave the
// finite range fail with ErrDegenerateGeometry and the centroids stay put.
func (km *KMeans) Step() (float64, error) {
	if err := kmeans.Assign(km.samples, km.centers, km.assignment); err != nil {
		return 0, passError(err)
	}
	moves, err := kmeans.Update(km.samples, km.centers, km.assignment)
	if err != nil {
		return 0, passError(err)
	}
	km.moves = moves
	km.iteration++

	maxMove := kmeans.MaxMove(moves)
	km.log.Debug("step", zap.Int("iteration", km.iteration), zap.Float64("max_move", maxMove))
	if km.cfg.onCluster != nil {
		km.cfg.onCluster(km.Snapshot())
	}
	return maxMove, nil
}

// Run steps until no centroid moves more than the move threshold (Converged)
// or the iteration cap is reached (IterationCap).
func (km *KMeans) Run(ctx context.Context) (Result, error) {
	lr, err := loop(ctx, km.limiter, km.cfg.maxIterations, func() (bool, error) {
		maxMove, err := km.Step()
		if err != nil {
			return false, err
		}
		return maxMove <= km.cfg.moveThreshold, nil
	})
	return finish(km.log, Result{RunID: km.id}, lr, err, Converged, IterationCap)
}

// RunID identifies this instance in logs and results.
func (km *KMeans) RunID() uuid.UUID { return km.id }

// Centroids returns the current centroids with the members of the latest
// assignment pass.
func (km *KMeans) Centroids() []Centroid {
	return centroids(km.centers, kmeans.Members(km.assignment, len(km.centers)))
}

// Assignment returns the centroid label of every sample.
func (km *KMeans) Assignment() []int { return slices.Clone(km.assignment) }

// Snapshot copies the current state.
func (km *KMeans) Snapshot() ClusterSnapshot {
	return ClusterSnapshot{
		RunID:      km.id,
		Iteration:  km.iteration,
		Centroids:  km.Centroids(),
		Assignment: km.Assignment(),
		Moves:      slices.Clone(km.moves),
	}
}
