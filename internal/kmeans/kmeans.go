package kmeans

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/yyyoichi/pointlearn/internal/geom"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoCenters      = errors.New("no centers to assign to")
	ErrLengthMismatch = errors.New("assignment length does not match point count")
	// ErrDegenerate means a distance or a mean left the finite range.
	ErrDegenerate     = errors.New("no finite distance or mean")
)

// Assign stores in assignment the index of the nearest center for every point.
// Ties go to the lower center index. A point with no finite distance to any
// center fails with ErrDegenerate; entries before it are already updated.
func Assign(points, centers []geom.Point, assignment []int) error {
	if len(centers) == 0 {
		return ErrNoCenters
	}
	if len(assignment) != len(points) {
		return ErrLengthMismatch
	}
	for i, p := range points {
		c, _ := geom.Nearest(p, centers)
		if c < 0 {
			return fmt.Errorf("%w: point %d is infinitely far from every center", ErrDegenerate, i)
		}
		assignment[i] = c
	}
	return nil
}

// Members groups point indexes by the center they are assigned to.
// Every point index appears in exactly one group.
func Members(assignment []int, k int) [][]int {
	members := make([][]int, k)
	for i := range members {
		members[i] = []int{}
	}
	for i, c := range assignment {
		members[c] = append(members[c], i)
	}
	return members
}

// Update moves every center with at least one member to the mean of its
// members and returns how far each center moved. Centers without members
// stay in place and report zero. centers is left untouched when a mean or a
// displacement is not finite.
func Update(points, centers []geom.Point, assignment []int) ([]float64, error) {
	if len(assignment) != len(points) {
		return nil, ErrLengthMismatch
	}
	stores := make([]AverageStore, len(centers))
	for i, c := range assignment {
		if c < 0 || c >= len(centers) {
			return nil, fmt.Errorf("point %d assigned to center %d of %d", i, c, len(centers))
		}
		stores[c].Add(points[i])
	}
	next := slices.Clone(centers)
	moves := make([]float64, len(centers))
	for j := range centers {
		avr, ok := stores[j].Average()
		if !ok {
			continue
		}
		if !avr.IsFinite() {
			return nil, fmt.Errorf("%w: mean of center %d", ErrDegenerate, j)
		}
		moves[j] = geom.Distance(centers[j], avr)
		if math.IsInf(moves[j], 0) || math.IsNaN(moves[j]) {
			return nil, fmt.Errorf("%w: displacement of center %d", ErrDegenerate, j)
		}
		next[j] = avr
	}
	copy(centers, next)
	return moves, nil
}

// MaxMove returns the largest displacement in moves, or zero when empty.
func MaxMove(moves []float64) float64 {
	if len(moves) == 0 {
		return 0
	}
	return floats.Max(moves)
}
