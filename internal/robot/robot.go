// Package robot binds a kinematic model, a footprint and a mutable state.
package robot

import (
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/footprint"
	"github.com/shrenikm/Morphac/internal/models"
)

// Robot owns one model, one footprint and one state. The state always has
// the model's pose and velocity sizes.
type Robot struct {
	model     models.KinematicModel
	footprint *footprint.Footprint
	state     constructs.State
}

// Option customises a Robot at construction.
type Option func(*Robot)

// WithFootprint overrides the model's default footprint.
func WithFootprint(f *footprint.Footprint) Option {
	return func(r *Robot) { r.footprint = f }
}

// WithState sets the initial state. It is copied and validated against the model.
func WithState(s constructs.State) Option {
	return func(r *Robot) { r.state = s.Clone() }
}

// New builds a robot. Without options the footprint is the model default and
// the state is zero.
func New(model models.KinematicModel, opts ...Option) (*Robot, error) {
	if model == nil {
		return nil, errors.Wrap(constructs.ErrConstruction, "robot needs a kinematic model")
	}
	zero, err := constructs.NewState(model.PoseSize(), model.VelocitySize())
	if err != nil {
		return nil, errors.Wrap(constructs.ErrConstruction, err.Error())
	}
	r := &Robot{model: model, state: zero}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.checkShape(r.state); err != nil {
		return nil, errors.Wrapf(constructs.ErrConstruction, "initial state: %v", err)
	}
	if r.footprint == nil {
		if r.footprint, err = model.DefaultFootprint(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Robot) checkShape(s constructs.State) error {
	if s.PoseSize() != r.model.PoseSize() || s.VelocitySize() != r.model.VelocitySize() {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "state shape (%d,%d), model expects (%d,%d)",
			s.PoseSize(), s.VelocitySize(), r.model.PoseSize(), r.model.VelocitySize())
	}
	return nil
}

func (r *Robot) KinematicModel() models.KinematicModel { return r.model }
func (r *Robot) Footprint() *footprint.Footprint      { return r.footprint }

// State returns the live state. Writes through it modify the robot.
func (r *Robot) State() constructs.State { return r.state }

// SetState replaces the state with a copy of s.
func (r *Robot) SetState(s constructs.State) error {
	if err := r.checkShape(s); err != nil {
		return err
	}
	r.state = s.Clone()
	return nil
}

// Pose returns a view of the pose part of the state.
func (r *Robot) Pose() (constructs.Pose, error) { return r.state.Pose() }

// Velocity returns a view of the velocity part of the state.
func (r *Robot) Velocity() (constructs.Velocity, error) { return r.state.Velocity() }

func (r *Robot) SetPose(p constructs.Pose) error         { return r.state.SetPose(p) }
func (r *Robot) SetVelocity(v constructs.Velocity) error { return r.state.SetVelocity(v) }

// ComputeStateDerivative evaluates the model at the current state.
func (r *Robot) ComputeStateDerivative(u constructs.ControlInput) (constructs.State, error) {
	return r.model.ComputeStateDerivative(r.state, u)
}

// ComputeStateDerivativeAt evaluates the model at an explicit state.
func (r *Robot) ComputeStateDerivativeAt(s constructs.State, u constructs.ControlInput) (constructs.State, error) {
	return r.model.ComputeStateDerivative(s, u)
}
