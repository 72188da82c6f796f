package discfolio

import "math"

// FindSelected returns the index whose angular position is closest to the anchor.
// Ties go to the lowest index. It returns -1 when n is zero.
func FindSelected(n int, rotation float64) int {
	if n <= 0 {
		return -1
	}
	distances := make([]float64, n)
	for i := range distances {
		distances[i] = CircularDistance(ItemAngle(i, n, rotation), AnchorAngle)
	}
	return argMinFirst(distances)
}

// argMinFirst keeps the first minimum and only replaces it on a strictly smaller value.
func argMinFirst(values []float64) int {
	best := -1
	lowest := math.Inf(1)
	for i, v := range values {
		if v < lowest {
			lowest = v
			best = i
		}
	}
	return best
}

// selectionTracker is the compare-and-notify step run once per frame.
// It has two states: stable, and changed-this-frame.
type selectionTracker struct {
	last   int
	valid  bool
	notify func(int)
}

func newSelectionTracker(notify func(int)) *selectionTracker {
	return &selectionTracker{last: -1, notify: notify}
}

// reset forgets the last selection so the next observation always notifies.
func (s *selectionTracker) reset() {
	s.last = -1
	s.valid = false
}

// observe records this frame's selection and reports whether it changed.
func (s *selectionTracker) observe(index int) bool {
	if index < 0 {
		return false
	}
	if s.valid && s.last == index {
		return false
	}
	s.last = index
	s.valid = true
	if s.notify != nil {
		s.notify(index)
	}
	return true
}

func (s *selectionTracker) current() (int, bool) {
	return s.last, s.valid
}
