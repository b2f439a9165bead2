package pointlearn

import (
	"math"
	"math/rand"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// scripted is a rand.Source whose Intn(n) draws follow picks in order, as
// long as each pick is below n. It repeats the last pick once exhausted.
type scripted struct {
	picks []int64
	at    int
}

func (s *scripted) Int63() int64 {
	if len(s.picks) == 0 {
		return 0
	}
	v := s.picks[min(s.at, len(s.picks)-1)]
	s.at++
	return v << 32
}

func (s *scripted) Seed(int64) {}

func scriptedRand(picks ...int64) *rand.Rand {
	return rand.New(&scripted{picks: picks})
}

func testLogger(t *testing.T) Option {
	return WithLogger(zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel)))
}

func grid(n int, step float64) []Point {
	points := make([]Point, 0, n*n)
	for i := range n {
		for j := range n {
			points = append(points, Point{X: float64(i) * step, Y: float64(j) * step})
		}
	}
	return points
}

func nan() float64 { return math.NaN() }
