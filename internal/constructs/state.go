package constructs

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// State is a Pose followed by a Velocity in one flat buffer. Either part may
// be empty, in which case the State is partial.
//
// Pose and Velocity return views into the buffer. Every other method that
// produces a State or a component allocates.
type State struct {
	data         []float64
	poseSize     int
	velocitySize int
}

// NewState returns a zero State with the given partition.
func NewState(poseSize, velocitySize int) (State, error) {
	if poseSize < 0 || velocitySize < 0 {
		return State{}, errors.Wrapf(ErrConstruction,
			"state sizes must be non-negative, got pose=%d velocity=%d", poseSize, velocitySize)
	}
	return State{
		data:         make([]float64, poseSize+velocitySize),
		poseSize:     poseSize,
		velocitySize: velocitySize,
	}, nil
}

// StateFrom concatenates copies of p and v.
func StateFrom(p Pose, v Velocity) State {
	data := make([]float64, 0, p.Size()+v.Size())
	data = append(data, p.data...)
	data = append(data, v.data...)
	return State{data: data, poseSize: p.Size(), velocitySize: v.Size()}
}

// StateFromData copies data and splits it into pose and velocity parts.
func StateFromData(data []float64, poseSize, velocitySize int) (State, error) {
	if poseSize < 0 || velocitySize < 0 {
		return State{}, errors.Wrapf(ErrConstruction,
			"state sizes must be non-negative, got pose=%d velocity=%d", poseSize, velocitySize)
	}
	if len(data) != poseSize+velocitySize {
		return State{}, errors.Wrapf(ErrConstruction,
			"state data has %d elements, want %d+%d", len(data), poseSize, velocitySize)
	}
	c := make([]float64, len(data))
	copy(c, data)
	return State{data: c, poseSize: poseSize, velocitySize: velocitySize}, nil
}

func (s State) Size() int         { return len(s.data) }
func (s State) PoseSize() int     { return s.poseSize }
func (s State) VelocitySize() int { return s.velocitySize }

// IsEmpty reports whether both parts are empty.
func (s State) IsEmpty() bool { return len(s.data) == 0 }

// IsPartial reports whether exactly one of the parts is empty.
func (s State) IsPartial() bool {
	return !s.IsEmpty() && (s.poseSize == 0 || s.velocitySize == 0)
}

// Pose returns a view of the pose part. Writes through the view modify s.
func (s State) Pose() (Pose, error) {
	if s.poseSize == 0 {
		return Pose{}, errors.Wrap(ErrDomain, "state has an empty pose")
	}
	return Pose{vector{data: s.data[:s.poseSize:s.poseSize]}}, nil
}

// Velocity returns a view of the velocity part. Writes through the view modify s.
func (s State) Velocity() (Velocity, error) {
	if s.velocitySize == 0 {
		return Velocity{}, errors.Wrap(ErrDomain, "state has an empty velocity")
	}
	return Velocity{vector{data: s.data[s.poseSize:len(s.data):len(s.data)]}}, nil
}

// SetPose copies p into the pose part.
func (s State) SetPose(p Pose) error {
	if s.poseSize == 0 {
		return errors.Wrap(ErrDomain, "state has an empty pose")
	}
	if p.Size() != s.poseSize {
		return errors.Wrapf(ErrDimensionMismatch, "pose size %d != state pose size %d", p.Size(), s.poseSize)
	}
	copy(s.data[:s.poseSize], p.data)
	return nil
}

// SetVelocity copies v into the velocity part.
func (s State) SetVelocity(v Velocity) error {
	if s.velocitySize == 0 {
		return errors.Wrap(ErrDomain, "state has an empty velocity")
	}
	if v.Size() != s.velocitySize {
		return errors.Wrapf(ErrDimensionMismatch, "velocity size %d != state velocity size %d", v.Size(), s.velocitySize)
	}
	copy(s.data[s.poseSize:], v.data)
	return nil
}

// At returns element i of the flat state. Negative indices count from the end.
func (s State) At(i int) (float64, error) {
	idx, err := normalizeIndex(i, len(s.data))
	if err != nil {
		return 0, err
	}
	return s.data[idx], nil
}

// Set writes element i of the flat state.
func (s State) Set(i int, val float64) error {
	idx, err := normalizeIndex(i, len(s.data))
	if err != nil {
		return err
	}
	s.data[idx] = val
	return nil
}

// Data returns a copy of the flat state.
func (s State) Data() []float64 {
	c := make([]float64, len(s.data))
	copy(c, s.data)
	return c
}

// SameShape reports whether o has the same pose and velocity sizes.
func (s State) SameShape(o State) bool {
	return s.poseSize == o.poseSize && s.velocitySize == o.velocitySize
}

func (s State) checkShape(o State) error {
	if !s.SameShape(o) {
		return errors.Wrapf(ErrDimensionMismatch, "state shapes differ: (%d,%d) != (%d,%d)",
			s.poseSize, s.velocitySize, o.poseSize, o.velocitySize)
	}
	return nil
}

func (s State) Add(o State) (State, error) {
	if err := s.checkShape(o); err != nil {
		return State{}, err
	}
	out := s.CreateLike()
	floats.AddTo(out.data, s.data, o.data)
	return out, nil
}

func (s State) Sub(o State) (State, error) {
	if err := s.checkShape(o); err != nil {
		return State{}, err
	}
	out := s.CreateLike()
	floats.SubTo(out.data, s.data, o.data)
	return out, nil
}

// Scale returns k*s.
func (s State) Scale(k float64) State {
	out := s.CreateLike()
	floats.ScaleTo(out.data, k, s.data)
	return out
}

// AddScaled returns s + k*o, the update used by every integrator stage.
func (s State) AddScaled(k float64, o State) (State, error) {
	if err := s.checkShape(o); err != nil {
		return State{}, err
	}
	out := s.Clone()
	floats.AddScaled(out.data, k, o.data)
	return out, nil
}

func (s State) Equal(o State) bool {
	return s.SameShape(o) && floats.Equal(s.data, o.data)
}

// ApproxEqual compares shape exactly and values within an absolute tolerance.
func (s State) ApproxEqual(o State, tol float64) bool {
	return s.SameShape(o) && floats.EqualApprox(s.data, o.data, tol)
}

// CreateLike returns a zero State with the same partition.
func (s State) CreateLike() State {
	return State{
		data:         make([]float64, len(s.data)),
		poseSize:     s.poseSize,
		velocitySize: s.velocitySize,
	}
}

func (s State) Clone() State {
	out := s.CreateLike()
	copy(out.data, s.data)
	return out
}

func (s State) String() string {
	p := vector{data: s.data[:s.poseSize]}
	v := vector{data: s.data[s.poseSize:]}
	return fmt.Sprintf("State(pose=%s, velocity=%s)", p, v)
}
