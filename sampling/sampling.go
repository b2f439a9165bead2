// Package sampling generates random sample sets on a rectangular canvas.
package sampling

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/yyyoichi/pointlearn"
)

var (
	ErrInvalidCount  = errors.New("invalid sample count")
	ErrInvalidBounds = errors.New("invalid canvas bounds")
)

// Count returns n when it is positive. Otherwise it returns 1 together with an
// error wrapping ErrInvalidCount that callers may report and then ignore.
func Count(name string, n int) (int, error) {
	if n > 0 {
		return n, nil
	}
	return 1, fmt.Errorf("%w: %s is %d, using 1", ErrInvalidCount, name, n)
}

// Bounds is the canvas size. Positions are drawn from [0, Width) x [0, Height).
type Bounds struct {
	Width  float64
	Height float64
}

// Validate requires both sides to be positive and finite.
func (b Bounds) Validate() error {
	for _, v := range [2]float64{b.Width, b.Height} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %vx%v", ErrInvalidBounds, b.Width, b.Height)
		}
	}
	return nil
}

type (
	// Option adjusts how a Generator places points.
	Option func(*Generator)

	Generator struct {
		rd       *rand.Rand
		bounds   Bounds
		grid     bool
		centered bool
	}
)

// WithGrid snaps every coordinate down to an integer.
func WithGrid() Option {
	return func(g *Generator) {
		g.grid = true
	}
}

// WithCentered moves the origin to the middle of the canvas with Y pointing
// up, so a point drawn at (x, y) is reported as (x - W/2, H/2 - y).
func WithCentered() Option {
	return func(g *Generator) {
		g.centered = true
	}
}

// New returns a Generator drawing from rd inside bounds.
func New(rd *rand.Rand, bounds Bounds, opts ...Option) (*Generator, error) {
	if rd == nil {
		return nil, errors.New("random source is nil")
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{rd: rd, bounds: bounds}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Generator) Bounds() Bounds { return g.bounds }

// Point draws one position.
func (g *Generator) Point() pointlearn.Point {
	x := g.rd.Float64() * g.bounds.Width
	y := g.rd.Float64() * g.bounds.Height
	if g.grid {
		x, y = math.Floor(x), math.Floor(y)
	}
	if g.centered {
		return pointlearn.Point{X: x - g.bounds.Width/2, Y: g.bounds.Height/2 - y}
	}
	return pointlearn.Point{X: x, Y: y}
}

func (g *Generator) Points(n int) []pointlearn.Point {
	points := make([]pointlearn.Point, n)
	for i := range points {
		points[i] = g.Point()
	}
	return points
}

// Labeled draws perClass ClassA samples followed by perClass ClassB samples.
// Both classes share the whole canvas, so the set is not separable in
// general.
func (g *Generator) Labeled(perClass int) []pointlearn.Sample {
	samples := make([]pointlearn.Sample, 2*perClass)
	for i := range samples {
		class := pointlearn.ClassA
		if i >= perClass {
			class = pointlearn.ClassB
		}
		samples[i] = pointlearn.Sample{Point: g.Point(), Class: class}
	}
	return samples
}
