package metrics

import (
	"github.com/shrenikm/Morphac/internal/constructs"
)

// OutOfBounds is the fraction of samples whose (x, y) lies outside the
// rectangle [0, width] × [0, height].
type OutOfBounds struct {
	width, height float64
	violations    int
	samples       int
}

func NewOutOfBounds(width, height float64) *OutOfBounds {
	return &OutOfBounds{width: width, height: height}
}

func (b *OutOfBounds) Name() string { return "out_of_bounds" }

func (b *OutOfBounds) Observe(s constructs.State, u constructs.ControlInput, t float64) {
	if s.PoseSize() < 2 {
		return
	}
	b.samples++
	d := s.Data()
	if d[0] < 0 || d[0] > b.width || d[1] < 0 || d[1] > b.height {
		b.violations++
	}
}

func (b *OutOfBounds) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return float64(b.violations) / float64(b.samples)
}

func (b *OutOfBounds) Reset() {
	b.violations = 0
	b.samples = 0
}
