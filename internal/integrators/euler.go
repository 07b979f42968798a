package integrators

import (
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/models"
)

// Euler is the explicit first order scheme s + dt*f(s, u).
type Euler struct {
	model models.KinematicModel
}

func NewEuler(model models.KinematicModel) *Euler {
	return &Euler{model: model}
}

func (e *Euler) Model() models.KinematicModel { return e.model }

func (e *Euler) Step(s constructs.State, u constructs.ControlInput, dt float64) (constructs.State, error) {
	if err := checkStep(dt); err != nil {
		return constructs.State{}, err
	}
	ds, err := e.model.ComputeStateDerivative(s, u)
	if err != nil {
		return constructs.State{}, err
	}
	next, err := s.AddScaled(dt, ds)
	if err != nil {
		return constructs.State{}, err
	}
	return e.model.NormalizeState(next), nil
}

func (e *Euler) Integrate(s constructs.State, u constructs.ControlInput, totalTime, dt float64) (constructs.State, error) {
	return integrate(e.model, e.Step, s, u, totalTime, dt)
}
