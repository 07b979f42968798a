package models

import (
	"math"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/footprint"
)

// DiffDrive is a two wheeled robot with independently driven wheels.
//
//	pose:    [x, y, θ]
//	control: [ω_left, ω_right]  (wheel angular rates)
type DiffDrive struct {
	Base
	radius float64
	width  float64
}

// NewDiffDrive builds a model with the given wheel radius and track width.
func NewDiffDrive(radius, width float64) (*DiffDrive, error) {
	if err := requirePositive("diffdrive", map[string]float64{"radius": radius, "width": width}); err != nil {
		return nil, err
	}
	return &DiffDrive{
		Base:   Base{poseSize: 3, velocitySize: 0, controlInputSize: 2},
		radius: radius,
		width:  width,
	}, nil
}

func (m *DiffDrive) Kind() string    { return "diffdrive" }
func (m *DiffDrive) Radius() float64 { return m.radius }
func (m *DiffDrive) Width() float64  { return m.width }

func (m *DiffDrive) ComputeStateDerivative(s constructs.State, u constructs.ControlInput) (constructs.State, error) {
	if err := m.Validate(s, u); err != nil {
		return constructs.State{}, err
	}
	theta := s.Data()[2]
	c := u.Data()
	left, right := c[0], c[1]
	half := m.radius / 2
	return m.derivative(
		half*math.Cos(theta)*(left+right),
		half*math.Sin(theta)*(left+right),
		m.radius/m.width*(right-left),
	)
}

// NormalizeState wraps θ.
func (m *DiffDrive) NormalizeState(s constructs.State) constructs.State {
	return normalizeAngles(s, 2)
}

func (m *DiffDrive) DefaultFootprint() (*footprint.Footprint, error) {
	return footprint.DiffDrive(m.width)
}
