package metrics

import (
	"math"
	"testing"

	"github.com/shrenikm/Morphac/internal/constructs"
)

func pose(x, y, theta float64) constructs.State {
	return constructs.StateFrom(constructs.PoseFrom(x, y, theta), constructs.VelocityFrom())
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()
	if m.Value() != 0 {
		t.Errorf("expected 0 before samples, got %v", m.Value())
	}
	m.Observe(pose(0, 0, 0), constructs.ControlInputFrom(1, -2), 0)
	m.Observe(pose(0, 0, 0), constructs.ControlInputFrom(0, 1), 0.1)
	if got := m.Value(); math.Abs(got-2) > 1e-12 {
		t.Errorf("expected mean effort 2, got %v", got)
	}
	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %v", m.Value())
	}
}

func TestDistance(t *testing.T) {
	m := NewDistance()
	for _, p := range [][2]float64{{0, 0}, {3, 4}, {3, 5}} {
		m.Observe(pose(p[0], p[1], 0), constructs.ControlInputFrom(0), 0)
	}
	if got := m.Value(); math.Abs(got-6) > 1e-12 {
		t.Errorf("expected distance 6, got %v", got)
	}
	m.Reset()
	m.Observe(pose(10, 10, 0), constructs.ControlInputFrom(0), 0)
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset and one sample, got %v", m.Value())
	}
}

func TestHeadingChangeWraps(t *testing.T) {
	m := NewHeadingChange()
	m.Observe(pose(0, 0, math.Pi-0.1), constructs.ControlInputFrom(0), 0)
	m.Observe(pose(0, 0, -math.Pi+0.1), constructs.ControlInputFrom(0), 0.1)
	if got := m.Value(); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("expected 0.2 across the ±π seam, got %v", got)
	}
}

func TestOutOfBounds(t *testing.T) {
	m := NewOutOfBounds(10, 5)
	m.Observe(pose(1, 1, 0), constructs.ControlInputFrom(0), 0)
	m.Observe(pose(11, 1, 0), constructs.ControlInputFrom(0), 0)
	m.Observe(pose(1, -1, 0), constructs.ControlInputFrom(0), 0)
	m.Observe(pose(10, 5, 0), constructs.ControlInputFrom(0), 0)
	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %v", got)
	}
}

func TestDefault(t *testing.T) {
	names := map[string]bool{}
	for _, f := range Default(10, 10) {
		names[f().Name()] = true
	}
	for _, want := range []string{"distance", "heading_change", "control_effort", "out_of_bounds"} {
		if !names[want] {
			t.Errorf("missing metric %q", want)
		}
	}
}
