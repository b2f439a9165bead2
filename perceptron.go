package pointlearn

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yyyoichi/pointlearn/internal/perceptron"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Perceptron learns a line separating ClassA samples (positive side) from
// ClassB samples (negative side). Each step draws one sample at random and,
// if it is on the wrong side, nudges the line toward it.
type Perceptron struct {
	id      uuid.UUID
	cfg     *config
	limiter *rate.Limiter
	log     *zap.Logger
	learner perceptron.Learner

	points   []Point
	classes  []Class
	boundary Boundary

	picked    int
	updated   bool
	iteration int
}

// NewPerceptron prepares training from start, which must be a valid line.
// The samples are copied.
func NewPerceptron(samples []Sample, start Boundary, opts ...Option) (*Perceptron, error) {
	cfg, err := newConfig(DefaultPerceptronIterations, opts...)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, configError("no samples")
	}
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w: start %+v: %w", ErrInvalidConfig, ErrDegenerateGeometry, start, err)
	}

	p := &Perceptron{
		id:       uuid.New(),
		cfg:      cfg,
		limiter:  newLimiter(cfg.pace),
		learner:  perceptron.Learner{Rate: cfg.rate, Scale: cfg.scale},
		points:   make([]Point, len(samples)),
		classes:  make([]Class, len(samples)),
		boundary: start,
		picked:   -1,
	}
	for i, s := range samples {
		if s.Class != ClassA && s.Class != ClassB {
			return nil, configError("sample %d has unknown class %v", i, s.Class)
		}
		p.points[i], p.classes[i] = s.Point, s.Class
	}
	if err := checkPoints(p.points); err != nil {
		return nil, err
	}
	p.log = cfg.logger.With(zap.String("algorithm", "perceptron"), zap.Stringer("run_id", p.id))
	p.log.Debug("initialized", zap.Int("samples", len(samples)), zap.Stringer("boundary", start))
	return p, nil
}

// Step draws one sample and applies the update law to it. It reports whether
// the boundary changed.
func (p *Perceptron) Step() (bool, error) {
	at := p.cfg.rand.Intn(len(p.points))
	updated, err := p.learner.Update(&p.boundary, p.points[at], p.classes[at])
	if err != nil {
		return false, fmt.Errorf("%w: update on sample %d: %w", ErrDegenerateGeometry, at, err)
	}
	p.picked, p.updated = at, updated
	p.iteration++

	if updated {
		p.log.Debug("step",
			zap.Int("iteration", p.iteration),
			zap.Int("picked", at),
			zap.Stringer("boundary", p.boundary),
		)
	}
	if p.cfg.onBoundary != nil {
		p.cfg.onBoundary(p.Snapshot())
	}
	return updated, nil
}

// Separated reports whether every sample lies strictly on its class side.
// A sample on the line counts as misclassified.
func (p *Perceptron) Separated() bool {
	for i, pt := range p.points {
		if !p.boundary.Correct(pt, p.classes[i]) {
			return false
		}
	}
	return true
}

func (p *Perceptron) Misclassified() int {
	return perceptron.Misclassified(p.boundary, p.points, p.classes)
}

// Run steps until every sample is classified correctly (Converged) or the
// iteration cap is reached (NoSolution). Separation is checked before the
// first step, so an already separating line converges in zero iterations.
func (p *Perceptron) Run(ctx context.Context) (Result, error) {
	if p.Separated() {
		return finish(p.log, Result{RunID: p.id}, loopResult{stopped: true}, nil, Converged, NoSolution)
	}
	lr, err := loop(ctx, p.limiter, p.cfg.maxIterations, func() (bool, error) {
		if _, err := p.Step(); err != nil {
			return false, err
		}
		return p.Separated(), nil
	})
	return finish(p.log, Result{RunID: p.id}, lr, err, Converged, NoSolution)
}

// RunID identifies this instance in logs and results.
func (p *Perceptron) RunID() uuid.UUID { return p.id }

func (p *Perceptron) Boundary() Boundary { return p.boundary }

// Snapshot copies the current boundary with the latest step outcome.
func (p *Perceptron) Snapshot() BoundarySnapshot {
	return BoundarySnapshot{
		RunID:         p.id,
		Iteration:     p.iteration,
		Boundary:      p.boundary,
		Equation:      p.boundary.String(),
		Misclassified: p.Misclassified(),
		Picked:        p.picked,
		Updated:       p.updated,
	}
}
