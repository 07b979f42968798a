package models

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/footprint"
	"github.com/shrenikm/Morphac/internal/geometry"
)

// KinematicModel is the capability set every model exposes.
type KinematicModel interface {
	PoseSize() int
	VelocitySize() int
	ControlInputSize() int

	// ComputeStateDerivative returns ds/dt, shaped like s.
	ComputeStateDerivative(s constructs.State, u constructs.ControlInput) (constructs.State, error)

	// NormalizeState maps s onto a canonical representation, for instance by
	// wrapping angles. It must not modify s.
	NormalizeState(s constructs.State) constructs.State

	DefaultFootprint() (*footprint.Footprint, error)
}

// Base carries the fixed sizes of a model and the default behaviour shared
// by all models. Embed it and override what differs.
type Base struct {
	poseSize         int
	velocitySize     int
	controlInputSize int
}

func NewBase(poseSize, velocitySize, controlInputSize int) (Base, error) {
	if poseSize < 0 || velocitySize < 0 || controlInputSize < 0 {
		return Base{}, errors.Wrapf(constructs.ErrConstruction,
			"model sizes must be non-negative, got (%d, %d, %d)", poseSize, velocitySize, controlInputSize)
	}
	return Base{poseSize: poseSize, velocitySize: velocitySize, controlInputSize: controlInputSize}, nil
}

func (b Base) PoseSize() int         { return b.poseSize }
func (b Base) VelocitySize() int     { return b.velocitySize }
func (b Base) ControlInputSize() int { return b.controlInputSize }

// Validate checks s and u against the model sizes.
func (b Base) Validate(s constructs.State, u constructs.ControlInput) error {
	if s.PoseSize() != b.poseSize {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "state pose size %d, model expects %d", s.PoseSize(), b.poseSize)
	}
	if s.VelocitySize() != b.velocitySize {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "state velocity size %d, model expects %d", s.VelocitySize(), b.velocitySize)
	}
	if u.Size() != b.controlInputSize {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "control input size %d, model expects %d", u.Size(), b.controlInputSize)
	}
	return nil
}

// ZeroState returns a zero state shaped for the model.
func (b Base) ZeroState() constructs.State {
	s, _ := constructs.NewState(b.poseSize, b.velocitySize)
	return s
}

// NormalizeState is the identity.
func (b Base) NormalizeState(s constructs.State) constructs.State { return s }

// DefaultFootprint is a unit square about the origin.
func (b Base) DefaultFootprint() (*footprint.Footprint, error) {
	return footprint.FromPolygon(geometry.Rectangle(1, 1, 0, r2.Point{}))
}

func (b Base) derivative(data ...float64) (constructs.State, error) {
	return constructs.StateFromData(data, b.poseSize, b.velocitySize)
}

// normalizeAngles returns a copy of s with the listed elements wrapped into (-π, π].
func normalizeAngles(s constructs.State, indices ...int) constructs.State {
	out := s.Clone()
	for _, i := range indices {
		v, err := out.At(i)
		if err != nil {
			continue
		}
		_ = out.Set(i, geometry.NormalizeAngle(v))
	}
	return out
}

func requirePositive(model string, params map[string]float64) error {
	for name, v := range params {
		if v <= 0 {
			return errors.Wrapf(constructs.ErrConstruction, "%s %s must be positive, got %g", model, name, v)
		}
	}
	return nil
}

var (
	_ KinematicModel = (*Ackermann)(nil)
	_ KinematicModel = (*DiffDrive)(nil)
	_ KinematicModel = (*Dubin)(nil)
	_ KinematicModel = (*Tricycle)(nil)
)
