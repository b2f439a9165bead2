package pointlearn

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultClusterIterations    = 20
	DefaultMoveThreshold        = 0.1
	DefaultPerceptronIterations = 1000
	DefaultLearningRate         = 0.01
	DefaultScale                = 50
)

type Option func(*config) error

type config struct {
	maxIterations int
	moveThreshold float64
	rate          float64
	scale         float64
	rand          *rand.Rand
	pace          time.Duration
	logger        *zap.Logger

	onCluster  func(ClusterSnapshot)
	onBoundary func(BoundarySnapshot)
}

// WithMaxIterations caps the number of steps a single Run takes.
// The default is 20 for the clusterers and 1000 for Perceptron.
func WithMaxIterations(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("max iterations must be positive, got %d", n)
		}
		c.maxIterations = n
		return nil
	}
}

// WithMoveThreshold sets the displacement at or below which KMeans counts as
// converged. The default is 0.1.
func WithMoveThreshold(threshold float64) Option {
	return func(c *config) error {
		if threshold < 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			return fmt.Errorf("move threshold must be a finite non-negative number, got %v", threshold)
		}
		c.moveThreshold = threshold
		return nil
	}
}

// WithLearningRate sets the perceptron step size. The default is 0.01.
func WithLearningRate(rate float64) Option {
	return func(c *config) error {
		if !(rate > 0) || math.IsInf(rate, 0) {
			return fmt.Errorf("learning rate must be positive, got %v", rate)
		}
		c.rate = rate
		return nil
	}
}

// WithScale sets the divisor applied to sample coordinates in the perceptron
// update, which keeps the position terms small next to the bias term.
// The default is 50.
func WithScale(scale float64) Option {
	return func(c *config) error {
		if !(scale > 0) || math.IsInf(scale, 0) {
			return fmt.Errorf("scale must be positive, got %v", scale)
		}
		c.scale = scale
		return nil
	}
}

// WithRand sets the random source used for seeding and sample draws.
func WithRand(rd *rand.Rand) Option {
	return func(c *config) error {
		if rd == nil {
			return fmt.Errorf("random source is nil")
		}
		c.rand = rd
		return nil
	}
}

// WithSeed is WithRand with a source seeded by seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithPacing inserts a delay between consecutive steps of Run so a display
// can keep up. Zero disables pacing.
func WithPacing(interval time.Duration) Option {
	return func(c *config) error {
		if interval < 0 {
			return fmt.Errorf("pacing interval must not be negative, got %v", interval)
		}
		c.pace = interval
		return nil
	}
}

// WithLogger sets the logger Run and Step write to. The default is a no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return fmt.Errorf("logger is nil")
		}
		c.logger = logger
		return nil
	}
}

// WithClusterObserver registers fn to receive a snapshot after every
// KMeans or Divisive step.
func WithClusterObserver(fn func(ClusterSnapshot)) Option {
	return func(c *config) error {
		c.onCluster = fn
		return nil
	}
}

// WithBoundaryObserver registers fn to receive a snapshot after every
// Perceptron step.
func WithBoundaryObserver(fn func(BoundarySnapshot)) Option {
	return func(c *config) error {
		c.onBoundary = fn
		return nil
	}
}

func newConfig(maxIterations int, opts ...Option) (*config, error) {
	c := &config{
		maxIterations: maxIterations,
		moveThreshold: DefaultMoveThreshold,
		rate:          DefaultLearningRate,
		scale:         DefaultScale,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}
