package integrators

import (
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/models"
)

// MidPoint evaluates the derivative at a half step Euler predictor and
// applies it over the full step.
type MidPoint struct {
	model models.KinematicModel
}

func NewMidPoint(model models.KinematicModel) *MidPoint {
	return &MidPoint{model: model}
}

func (m *MidPoint) Model() models.KinematicModel { return m.model }

func (m *MidPoint) Step(s constructs.State, u constructs.ControlInput, dt float64) (constructs.State, error) {
	if err := checkStep(dt); err != nil {
		return constructs.State{}, err
	}
	k1, err := m.model.ComputeStateDerivative(s, u)
	if err != nil {
		return constructs.State{}, err
	}
	mid, err := s.AddScaled(dt/2, k1)
	if err != nil {
		return constructs.State{}, err
	}
	k2, err := m.model.ComputeStateDerivative(mid, u)
	if err != nil {
		return constructs.State{}, err
	}
	next, err := s.AddScaled(dt, k2)
	if err != nil {
		return constructs.State{}, err
	}
	return m.model.NormalizeState(next), nil
}

func (m *MidPoint) Integrate(s constructs.State, u constructs.ControlInput, totalTime, dt float64) (constructs.State, error) {
	return integrate(m.model, m.Step, s, u, totalTime, dt)
}
