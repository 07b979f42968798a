package models

import (
	"math"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/footprint"
)

// Dubin moves forward at a fixed speed; only the turn rate is controlled.
//
//	pose:    [x, y, θ]
//	control: [θ̇]
type Dubin struct {
	Base
	speed float64
}

func NewDubin(speed float64) *Dubin {
	return &Dubin{
		Base:  Base{poseSize: 3, velocitySize: 0, controlInputSize: 1},
		speed: speed,
	}
}

func (m *Dubin) Kind() string   { return "dubin" }
func (m *Dubin) Speed() float64 { return m.speed }

func (m *Dubin) ComputeStateDerivative(s constructs.State, u constructs.ControlInput) (constructs.State, error) {
	if err := m.Validate(s, u); err != nil {
		return constructs.State{}, err
	}
	theta := s.Data()[2]
	omega := u.Data()[0]
	return m.derivative(
		m.speed*math.Cos(theta),
		m.speed*math.Sin(theta),
		omega,
	)
}

// NormalizeState wraps θ.
func (m *Dubin) NormalizeState(s constructs.State) constructs.State {
	return normalizeAngles(s, 2)
}

func (m *Dubin) DefaultFootprint() (*footprint.Footprint, error) {
	return footprint.Dubin()
}
