package integrators

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/models"
)

type Integrator interface {
	// Step advances s by one step of length dt.
	Step(s constructs.State, u constructs.ControlInput, dt float64) (constructs.State, error)

	// Integrate advances s by totalTime using steps of length dt.
	Integrate(s constructs.State, u constructs.ControlInput, totalTime, dt float64) (constructs.State, error)

	Model() models.KinematicModel
}

// Type selects a built in scheme.
type Type int

const (
	TypeEuler Type = iota
	TypeMidPoint
	TypeRK4
)

var typeNames = map[Type]string{
	TypeEuler:    "euler",
	TypeMidPoint: "midpoint",
	TypeRK4:      "rk4",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Types lists the built in schemes in declaration order.
func Types() []Type { return []Type{TypeEuler, TypeMidPoint, TypeRK4} }

// ParseType accepts the names returned by Type.String, case insensitively.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return 0, errors.Wrapf(constructs.ErrInvalidArgument, "unknown integrator %q", name)
}

// New builds the integrator of type t bound to model.
func New(t Type, model models.KinematicModel) (Integrator, error) {
	if model == nil {
		return nil, errors.Wrap(constructs.ErrInvalidArgument, "integrator needs a model")
	}
	switch t {
	case TypeEuler:
		return NewEuler(model), nil
	case TypeMidPoint:
		return NewMidPoint(model), nil
	case TypeRK4:
		return NewRK4(model), nil
	}
	return nil, errors.Wrapf(constructs.ErrInvalidArgument, "unknown integrator type %d", int(t))
}

// stepTolerance absorbs floating point error when dividing totalTime by dt.
const stepTolerance = 1e-9

type stepFunc func(constructs.State, constructs.ControlInput, float64) (constructs.State, error)

// integrate takes floor(totalTime/dt) full steps followed by one partial step
// covering whatever time remains. A zero totalTime returns s unchanged.
func integrate(model models.KinematicModel, step stepFunc, s constructs.State, u constructs.ControlInput, totalTime, dt float64) (constructs.State, error) {
	if dt <= 0 {
		return constructs.State{}, errors.Wrapf(constructs.ErrInvalidArgument, "dt must be positive, got %g", dt)
	}
	if totalTime < 0 {
		return constructs.State{}, errors.Wrapf(constructs.ErrInvalidArgument, "total time must be non-negative, got %g", totalTime)
	}
	if err := checkShapes(model, s, u); err != nil {
		return constructs.State{}, err
	}

	n := int(math.Floor(totalTime/dt + stepTolerance))
	out := s.Clone()
	var err error
	for i := 0; i < n; i++ {
		if out, err = step(out, u, dt); err != nil {
			return constructs.State{}, err
		}
	}
	if rem := totalTime - float64(n)*dt; rem > stepTolerance*dt {
		if out, err = step(out, u, rem); err != nil {
			return constructs.State{}, err
		}
	}
	return out, nil
}

func checkShapes(model models.KinematicModel, s constructs.State, u constructs.ControlInput) error {
	if s.PoseSize() != model.PoseSize() || s.VelocitySize() != model.VelocitySize() {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "state shape (%d,%d), model expects (%d,%d)",
			s.PoseSize(), s.VelocitySize(), model.PoseSize(), model.VelocitySize())
	}
	if u.Size() != model.ControlInputSize() {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "control input size %d, model expects %d",
			u.Size(), model.ControlInputSize())
	}
	return nil
}

func checkStep(dt float64) error {
	if dt < 0 || math.IsNaN(dt) {
		return errors.Wrapf(constructs.ErrInvalidArgument, "dt must be non-negative, got %g", dt)
	}
	return nil
}
