package models

import (
	"math"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/footprint"
)

// Tricycle has one steered and driven front wheel and two passive rear wheels.
//
//	pose:    [x, y, θ, α]  (α is the front wheel angle)
//	control: [v, α̇]        (v is the front wheel speed)
type Tricycle struct {
	Base
	width  float64
	length float64
}

// NewTricycle builds a model with the given rear track width and wheelbase.
// The width only affects the footprint.
func NewTricycle(width, length float64) (*Tricycle, error) {
	if err := requirePositive("tricycle", map[string]float64{"width": width, "length": length}); err != nil {
		return nil, err
	}
	return &Tricycle{
		Base:   Base{poseSize: 4, velocitySize: 0, controlInputSize: 2},
		width:  width,
		length: length,
	}, nil
}

func (m *Tricycle) Kind() string    { return "tricycle" }
func (m *Tricycle) Width() float64  { return m.width }
func (m *Tricycle) Length() float64 { return m.length }

func (m *Tricycle) ComputeStateDerivative(s constructs.State, u constructs.ControlInput) (constructs.State, error) {
	if err := m.Validate(s, u); err != nil {
		return constructs.State{}, err
	}
	x := s.Data()
	theta, alpha := x[2], x[3]
	c := u.Data()
	v, alphaDot := c[0], c[1]
	return m.derivative(
		v*math.Cos(alpha)*math.Cos(theta),
		v*math.Cos(alpha)*math.Sin(theta),
		v*math.Sin(alpha)/m.length,
		alphaDot,
	)
}

// NormalizeState wraps θ and α.
func (m *Tricycle) NormalizeState(s constructs.State) constructs.State {
	return normalizeAngles(s, 2, 3)
}

func (m *Tricycle) DefaultFootprint() (*footprint.Footprint, error) {
	return footprint.Tricycle(m.width, m.length)
}
