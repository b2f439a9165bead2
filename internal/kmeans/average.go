package kmeans

import "github.com/yyyoichi/pointlearn/internal/geom"

// AverageStore keeps a running component-wise mean. The mean is updated as a
// weighted blend so finite points never overflow it.
type AverageStore struct {
	meanX, meanY float64
	count        int
}

// Add folds p into the mean.
func (s *AverageStore) Add(p geom.Point) {
	s.count += 1
	n := float64(s.count)
	keep := (n - 1) / n
	s.meanX = s.meanX*keep + p.X/n
	s.meanY = s.meanY*keep + p.Y/n
}

// Average returns the mean of the added points. ok is false when nothing was added.
func (s *AverageStore) Average() (avr geom.Point, ok bool) {
	if s.count == 0 {
		return geom.Point{}, false
	}
	return geom.Point{X: s.meanX, Y: s.meanY}, true
}

func (s *AverageStore) Count() int { return s.count }

func (s *AverageStore) Reset() {
	s.meanX, s.meanY, s.count = 0, 0, 0
}
