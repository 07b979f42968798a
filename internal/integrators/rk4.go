package integrators

import (
	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/models"
)

// RK4 is the classic four stage Runge-Kutta scheme.
type RK4 struct {
	model models.KinematicModel
}

func NewRK4(model models.KinematicModel) *RK4 {
	return &RK4{model: model}
}

func (r *RK4) Model() models.KinematicModel { return r.model }

func (r *RK4) Step(s constructs.State, u constructs.ControlInput, dt float64) (constructs.State, error) {
	if err := checkStep(dt); err != nil {
		return constructs.State{}, err
	}
	f := r.model.ComputeStateDerivative

	k1, err := f(s, u)
	if err != nil {
		return constructs.State{}, err
	}
	x2, err := s.AddScaled(dt*0.5, k1)
	if err != nil {
		return constructs.State{}, err
	}
	k2, err := f(x2, u)
	if err != nil {
		return constructs.State{}, err
	}
	x3, err := s.AddScaled(dt*0.5, k2)
	if err != nil {
		return constructs.State{}, err
	}
	k3, err := f(x3, u)
	if err != nil {
		return constructs.State{}, err
	}
	x4, err := s.AddScaled(dt, k3)
	if err != nil {
		return constructs.State{}, err
	}
	k4, err := f(x4, u)
	if err != nil {
		return constructs.State{}, err
	}

	dt6 := dt / 6.0
	next := s.Clone()
	for _, stage := range []struct {
		w float64
		k constructs.State
	}{{1, k1}, {2, k2}, {2, k3}, {1, k4}} {
		if next, err = next.AddScaled(dt6*stage.w, stage.k); err != nil {
			return constructs.State{}, err
		}
	}
	return r.model.NormalizeState(next), nil
}

func (r *RK4) Integrate(s constructs.State, u constructs.ControlInput, totalTime, dt float64) (constructs.State, error) {
	return integrate(r.model, r.Step, s, u, totalTime, dt)
}
