// Command pointlearn generates random samples, runs one of the learning
// procedures on them and optionally renders the snapshots.
//
//	pointlearn -algo kmeans -samples 1000 -clusters 5 -out ./snapshots
//	pointlearn -algo divisive -samples 300 -pace 10ms -format html -out ./snapshots -every-step
//	pointlearn -algo perceptron -samples 10 -seed 42
package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/yyyoichi/pointlearn"
	"github.com/yyyoichi/pointlearn/render"
	"github.com/yyyoichi/pointlearn/sampling"
	"go.uber.org/zap"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := newLogger(cfg.Dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type runner struct {
	cfg    Config
	log    *zap.Logger
	rd     *rand.Rand
	stdout io.Writer
}

func run(ctx context.Context, cfg Config, logger *zap.Logger, stdout io.Writer) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := &runner{
		cfg:    cfg,
		log:    logger.With(zap.Int64("seed", seed)),
		rd:     rand.New(rand.NewSource(seed)),
		stdout: stdout,
	}
	if cfg.Out != "" {
		if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
			return err
		}
	}
	switch cfg.Algorithm {
	case AlgoKMeans:
		return r.kmeans(ctx)
	case AlgoDivisive:
		return r.divisive(ctx)
	case AlgoPerceptron:
		return r.perceptron(ctx)
	}
	return fmt.Errorf("unknown algorithm %q", cfg.Algorithm)
}

// count applies the fallback to 1 and reports it.
func (r *runner) count(name string, n int) int {
	n, err := sampling.Count(name, n)
	if err != nil {
		r.log.Warn("count fallback", zap.Error(err))
	}
	return n
}

func (r *runner) options() []pointlearn.Option {
	opts := []pointlearn.Option{
		pointlearn.WithRand(r.rd),
		pointlearn.WithLogger(r.log),
		pointlearn.WithPacing(r.cfg.Pace),
	}
	if r.cfg.MaxIterations > 0 {
		opts = append(opts, pointlearn.WithMaxIterations(r.cfg.MaxIterations))
	}
	return opts
}

func (r *runner) bounds() sampling.Bounds {
	return sampling.Bounds{Width: r.cfg.Width, Height: r.cfg.Height}
}

func (r *runner) gridPoints() ([]pointlearn.Point, error) {
	gen, err := sampling.New(r.rd, r.bounds(), sampling.WithGrid())
	if err != nil {
		return nil, err
	}
	return gen.Points(r.count("samples", r.cfg.Samples)), nil
}

// save renders into <out>/<name>.<format>. It does nothing without an
// output directory.
func (r *runner) save(name string, png, html func(io.Writer) error) error {
	if r.cfg.Out == "" {
		return nil
	}
	path := filepath.Join(r.cfg.Out, name+"."+r.cfg.Format)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	draw := png
	if r.cfg.Format == "html" {
		draw = html
	}
	if err := draw(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.log.Debug("snapshot saved", zap.String("path", path))
	return nil
}

func (r *runner) saveClusters(name string, samples []pointlearn.Point, snap pointlearn.ClusterSnapshot) error {
	return r.save(name,
		func(w io.Writer) error { return render.ClustersPNG(w, samples, snap) },
		func(w io.Writer) error { return render.ClustersHTML(w, samples, snap) },
	)
}

// clusterObserver renders every step when asked to. Render errors are logged
// so they never stop the run.
func (r *runner) clusterObserver(samples []pointlearn.Point) pointlearn.Option {
	return pointlearn.WithClusterObserver(func(s pointlearn.ClusterSnapshot) {
		if !r.cfg.EveryStep {
			return
		}
		if err := r.saveClusters(fmt.Sprintf("step-%03d", s.Iteration), samples, s); err != nil {
			r.log.Warn("render step", zap.Int("iteration", s.Iteration), zap.Error(err))
		}
	})
}

func (r *runner) reportClusters(res pointlearn.Result, centroids []pointlearn.Centroid) {
	fmt.Fprintf(r.stdout, "%s after %d iterations\n", res.Status, res.Iterations)
	for _, c := range centroids {
		fmt.Fprintf(r.stdout, "cluster %d: (%.1f, %.1f) %d samples\n", c.Label, c.Position.X, c.Position.Y, len(c.Members))
	}
}

func (r *runner) kmeans(ctx context.Context) error {
	samples, err := r.gridPoints()
	if err != nil {
		return err
	}
	k := r.count("clusters", r.cfg.Clusters)
	km, err := pointlearn.NewKMeans(samples, k, pointlearn.SeedUniform(r.cfg.Width, r.cfg.Height),
		append(r.options(), r.clusterObserver(samples))...)
	if err != nil {
		return err
	}
	res, err := km.Run(ctx)
	if err != nil && res.Status != pointlearn.Canceled {
		return err
	}
	r.reportClusters(res, km.Centroids())
	return r.saveClusters("final", samples, km.Snapshot())
}

func (r *runner) divisive(ctx context.Context) error {
	samples, err := r.gridPoints()
	if err != nil {
		return err
	}
	d, err := pointlearn.NewDivisive(samples, append(r.options(), r.clusterObserver(samples))...)
	if err != nil {
		return err
	}
	res, err := d.Run(ctx)
	if err != nil && res.Status != pointlearn.Canceled {
		return err
	}
	r.reportClusters(res, d.Centroids())
	return r.saveClusters("final", samples, d.Snapshot())
}

func (r *runner) perceptron(ctx context.Context) error {
	gen, err := sampling.New(r.rd, r.bounds(), sampling.WithCentered())
	if err != nil {
		return err
	}
	samples := gen.Labeled(r.count("samples", r.cfg.Samples))
	span := math.Max(r.cfg.Width, r.cfg.Height) / 2

	saveBoundary := func(name string, snap pointlearn.BoundarySnapshot) error {
		return r.save(name,
			func(w io.Writer) error { return render.BoundaryPNG(w, samples, snap, span) },
			func(w io.Writer) error { return render.BoundaryHTML(w, samples, snap, span) },
		)
	}
	observer := pointlearn.WithBoundaryObserver(func(s pointlearn.BoundarySnapshot) {
		if !r.cfg.EveryStep || !s.Updated {
			return
		}
		if err := saveBoundary(fmt.Sprintf("step-%04d", s.Iteration), s); err != nil {
			r.log.Warn("render step", zap.Int("iteration", s.Iteration), zap.Error(err))
		}
	})

	p, err := pointlearn.NewPerceptron(samples, pointlearn.DefaultBoundary, append(r.options(), observer)...)
	if err != nil {
		return err
	}
	res, err := p.Run(ctx)
	if err != nil && res.Status != pointlearn.Canceled {
		return err
	}
	fmt.Fprintf(r.stdout, "%s after %d iterations\n", res.Status, res.Iterations)
	fmt.Fprintln(r.stdout, p.Boundary().Equation(1))
	return saveBoundary("final", p.Snapshot())
}
