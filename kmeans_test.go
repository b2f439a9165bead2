package pointlearn

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeansSquare(t *testing.T) {
	samples := []Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	km, err := NewKMeans(samples, 1, nil, WithSeed(1), testLogger(t))
	require.NoError(t, err)

	move, err := km.Step()
	require.NoError(t, err)
	assert.Greater(t, move, 0.0)
	assert.Equal(t, Point{X: 0.5, Y: 0.5}, km.Centroids()[0].Position)

	move, err = km.Step()
	require.NoError(t, err)
	assert.Equal(t, 0.0, move)
	assert.Equal(t, []int{0, 1, 2, 3}, km.Centroids()[0].Members)

	// A settled state is a fixed point.
	assignment, centroids := km.Assignment(), km.Centroids()
	move, err = km.Step()
	require.NoError(t, err)
	assert.Equal(t, 0.0, move)
	if diff := cmp.Diff(assignment, km.Assignment()); diff != "" {
		t.Errorf("assignment changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(centroids, km.Centroids()); diff != "" {
		t.Errorf("centroids changed (-before +after):\n%s", diff)
	}
}

func TestKMeansHugeCoordinates(t *testing.T) {
	t.Run("mean near the float limit", func(t *testing.T) {
		samples := []Point{{1e308, 0}, {1.5e308, 0}}
		km, err := NewKMeans(samples, 1, SeedAt(Point{0, 0}), testLogger(t))
		require.NoError(t, err)

		res, err := km.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Converged, res.Status)
		assert.InEpsilon(t, 1.25e308, km.Centroids()[0].Position.X, 1e-12)
	})
	t.Run("distance overflows after a step", func(t *testing.T) {
		samples := []Point{{-1.7e308, 0}}
		for range 9 {
			samples = append(samples, Point{1.7e308, 0})
		}
		km, err := NewKMeans(samples, 1, SeedAt(Point{0, 0}), testLogger(t))
		require.NoError(t, err)

		res, err := km.Run(context.Background())
		assert.ErrorIs(t, err, ErrDegenerateGeometry)
		assert.Equal(t, Failed, res.Status)
		assert.Equal(t, 2, res.Iterations)

		c := km.Centroids()
		require.Len(t, c, 1)
		assert.True(t, c[0].Position.IsFinite())
		assert.Len(t, c[0].Members, len(samples), "every sample keeps a valid label")
	})
	t.Run("distance overflows at construction", func(t *testing.T) {
		_, err := NewKMeans([]Point{{-1.7e308, 0}}, 1, SeedAt(Point{1.7e308, 0}))
		assert.ErrorIs(t, err, ErrDegenerateGeometry)
	})
}

func TestKMeansTwoGroups(t *testing.T) {
	samples := []Point{
		{0, 0}, {1, 0}, {0, 1},
		{10, 10}, {11, 10}, {10, 11},
	}
	km, err := NewKMeans(samples, 2, SeedAt(Point{0, 0}, Point{10, 10}), testLogger(t))
	require.NoError(t, err)

	res, err := km.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.LessOrEqual(t, res.Iterations, 3)
	assert.Equal(t, km.RunID(), res.RunID)

	want := []Centroid{
		{Label: 0, Position: Point{X: 1.0 / 3, Y: 1.0 / 3}, Members: []int{0, 1, 2}},
		{Label: 1, Position: Point{X: 31.0 / 3, Y: 31.0 / 3}, Members: []int{3, 4, 5}},
	}
	if diff := cmp.Diff(want, km.Centroids(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("centroids mismatch (-want +got):\n%s", diff)
	}
}

func TestKMeansInvariants(t *testing.T) {
	rd := rand.New(rand.NewSource(42))
	samples := make([]Point, 300)
	for i := range samples {
		samples[i] = Point{X: rd.Float64() * 400, Y: rd.Float64() * 300}
	}

	var snaps []ClusterSnapshot
	km, err := NewKMeans(samples, 5, SeedUniform(400, 300),
		WithSeed(3),
		WithMaxIterations(8),
		WithMoveThreshold(0),
		WithClusterObserver(func(s ClusterSnapshot) { snaps = append(snaps, s) }),
		testLogger(t),
	)
	require.NoError(t, err)

	res, err := km.Run(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Iterations, 8)
	require.Len(t, snaps, res.Iterations)

	for i, s := range snaps {
		assert.Equal(t, i+1, s.Iteration)
		assert.Len(t, s.Centroids, 5)
		assert.Len(t, s.Moves, 5)
		seen := make([]int, len(samples))
		for _, c := range s.Centroids {
			for _, at := range c.Members {
				seen[at]++
				assert.Equal(t, c.Label, s.Assignment[at])
			}
		}
		for at, n := range seen {
			assert.Equal(t, 1, n, "iteration %d: sample %d", s.Iteration, at)
		}
	}
}

func TestKMeansEmptyCentroidStays(t *testing.T) {
	samples := []Point{{0, 0}, {2, 0}}
	far := Point{X: 1000, Y: 1000}
	km, err := NewKMeans(samples, 2, SeedAt(Point{1, 0}, far), testLogger(t))
	require.NoError(t, err)

	_, err = km.Step()
	require.NoError(t, err)
	cs := km.Centroids()
	assert.Equal(t, far, cs[1].Position)
	assert.Empty(t, cs[1].Members)
	assert.NotNil(t, cs[1].Members)
}

func TestKMeansIterationCap(t *testing.T) {
	samples := grid(5, 1)
	km, err := NewKMeans(samples, 3, SeedAt(Point{100, 100}, Point{-100, -100}, Point{100, -100}),
		WithMaxIterations(1), testLogger(t))
	require.NoError(t, err)

	res, err := km.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, IterationCap, res.Status)
	assert.Equal(t, 1, res.Iterations)
	assert.False(t, res.Done())
}

func TestNewKMeans(t *testing.T) {
	samples := []Point{{0, 0}, {1, 1}}
	test := []struct {
		name    string
		samples []Point
		k       int
		seed    SeedFunc
		opts    []Option
	}{
		{"no samples", nil, 1, nil, nil},
		{"zero k", samples, 0, nil, nil},
		{"k above samples", samples, 3, SeedFromSamples(), nil},
		{"seed count mismatch", samples, 2, SeedAt(Point{0, 0}), nil},
		{"bad canvas", samples, 2, SeedUniform(0, 10), nil},
		{"not finite", []Point{{0, 0}, {X: nan()}}, 1, nil, nil},
		{"bad option", samples, 1, nil, []Option{WithMaxIterations(0)}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKMeans(tt.samples, tt.k, tt.seed, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("k above samples with uniform seed", func(t *testing.T) {
		km, err := NewKMeans(samples, 4, SeedUniform(10, 10), WithSeed(1))
		require.NoError(t, err)
		assert.Len(t, km.Centroids(), 4)
	})
	t.Run("samples are copied", func(t *testing.T) {
		in := []Point{{0, 0}, {2, 2}}
		km, err := NewKMeans(in, 1, SeedAt(Point{0, 0}))
		require.NoError(t, err)
		in[1] = Point{100, 100}
		_, err = km.Step()
		require.NoError(t, err)
		assert.Equal(t, Point{1, 1}, km.Centroids()[0].Position)
	})
}

func TestSeedFromSamplesDistinct(t *testing.T) {
	samples := grid(4, 1)
	centers, err := SeedFromSamples()(16, samples, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.ElementsMatch(t, samples, centers)
}
