package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/geometry"
)

// Distance is the length of the (x, y) path through the observed states.
// States with fewer than two pose components are ignored.
type Distance struct {
	last  []float64
	total float64
}

func NewDistance() *Distance { return &Distance{} }

func (d *Distance) Name() string { return "distance" }

func (d *Distance) Observe(s constructs.State, u constructs.ControlInput, t float64) {
	if s.PoseSize() < 2 {
		return
	}
	xy := s.Data()[:2]
	if d.last != nil {
		d.total += floats.Distance(d.last, xy, 2)
	}
	d.last = xy
}

func (d *Distance) Value() float64 { return d.total }

func (d *Distance) Reset() {
	d.last = nil
	d.total = 0
}

// HeadingChange is the total absolute turn of the heading (pose index 2),
// taking the shortest way around the circle between samples.
type HeadingChange struct {
	last  float64
	seen  bool
	total float64
}

func NewHeadingChange() *HeadingChange { return &HeadingChange{} }

func (h *HeadingChange) Name() string { return "heading_change" }

func (h *HeadingChange) Observe(s constructs.State, u constructs.ControlInput, t float64) {
	if s.PoseSize() < 3 {
		return
	}
	theta := s.Data()[2]
	if h.seen {
		h.total += math.Abs(geometry.NormalizeAngle(theta - h.last))
	}
	h.last, h.seen = theta, true
}

func (h *HeadingChange) Value() float64 { return h.total }

func (h *HeadingChange) Reset() {
	h.seen = false
	h.total = 0
}
