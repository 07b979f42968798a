package models

import (
	"math"

	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/footprint"
	"github.com/shrenikm/Morphac/internal/geometry"
)

// Ackermann is a car with rear wheel drive and Ackermann front steering.
//
//	pose:    [x, y, θ, φ]  (φ is the ideal bicycle steering angle)
//	control: [v, φ̇]
type Ackermann struct {
	Base
	width  float64
	length float64
}

// NewAckermann builds a model with the given track width and wheelbase.
func NewAckermann(width, length float64) (*Ackermann, error) {
	if err := requirePositive("ackermann", map[string]float64{"width": width, "length": length}); err != nil {
		return nil, err
	}
	return &Ackermann{
		Base:   Base{poseSize: 4, velocitySize: 0, controlInputSize: 2},
		width:  width,
		length: length,
	}, nil
}

func (m *Ackermann) Kind() string    { return "ackermann" }
func (m *Ackermann) Width() float64  { return m.width }
func (m *Ackermann) Length() float64 { return m.length }

// ComputeStateDerivative rejects steering angles outside (-π/2, π/2) with
// constructs.ErrDomain.
func (m *Ackermann) ComputeStateDerivative(s constructs.State, u constructs.ControlInput) (constructs.State, error) {
	if err := m.Validate(s, u); err != nil {
		return constructs.State{}, err
	}
	x := s.Data()
	theta, phi := x[2], x[3]
	if phi <= -math.Pi/2 || phi >= math.Pi/2 {
		return constructs.State{}, errors.Wrapf(constructs.ErrDomain,
			"steering angle %g must lie in (-π/2, π/2)", phi)
	}
	c := u.Data()
	v, phiDot := c[0], c[1]
	return m.derivative(
		v*math.Cos(theta),
		v*math.Sin(theta),
		v*math.Tan(phi)/m.length,
		phiDot,
	)
}

// NormalizeState wraps θ and φ.
func (m *Ackermann) NormalizeState(s constructs.State) constructs.State {
	return normalizeAngles(s, 2, 3)
}

func (m *Ackermann) DefaultFootprint() (*footprint.Footprint, error) {
	return footprint.Ackermann(m.width, m.length)
}

// InnerSteeringAngle is the angle of the wheel closer to the turn center.
func (m *Ackermann) InnerSteeringAngle(ideal float64) float64 {
	s, c := math.Sincos(ideal)
	return geometry.NormalizeAngle(math.Atan2(2*m.length*s, 2*m.length*c-m.width*s))
}

// OuterSteeringAngle is the angle of the wheel farther from the turn center.
func (m *Ackermann) OuterSteeringAngle(ideal float64) float64 {
	s, c := math.Sincos(ideal)
	return geometry.NormalizeAngle(math.Atan2(2*m.length*s, 2*m.length*c+m.width*s))
}

// SteeringAngles returns the (inner, outer) wheel angles for an ideal
// steering angle. For a negative angle both are mirrored, so
// outer < ideal < inner when ideal > 0 and inner < ideal < outer when ideal < 0.
func (m *Ackermann) SteeringAngles(ideal float64) (inner, outer float64) {
	a := math.Abs(ideal)
	inner, outer = m.InnerSteeringAngle(a), m.OuterSteeringAngle(a)
	if ideal < 0 {
		return -inner, -outer
	}
	return inner, outer
}
