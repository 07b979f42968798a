package constructs

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Trajectory is an ordered, non-empty sequence of knot points that all share
// one (pose size, velocity size) partition.
type Trajectory struct {
	knots        []State
	poseSize     int
	velocitySize int
}

// NewTrajectory builds a trajectory from one or more states of identical shape.
func NewTrajectory(states ...State) (*Trajectory, error) {
	if len(states) == 0 {
		return nil, errors.Wrap(ErrConstruction, "trajectory needs at least one knot point")
	}
	first := states[0]
	if first.IsEmpty() {
		return nil, errors.Wrap(ErrConstruction, "trajectory knot points must not be empty")
	}
	t := &Trajectory{
		knots:        make([]State, 0, len(states)),
		poseSize:     first.PoseSize(),
		velocitySize: first.VelocitySize(),
	}
	for i, s := range states {
		if !first.SameShape(s) {
			return nil, errors.Wrapf(ErrConstruction, "knot point %d has shape (%d,%d), want (%d,%d)",
				i, s.PoseSize(), s.VelocitySize(), t.poseSize, t.velocitySize)
		}
		t.knots = append(t.knots, s.Clone())
	}
	return t, nil
}

// TrajectoryFromData builds a trajectory from an N×dim matrix, one knot point per row.
func TrajectoryFromData(data mat.Matrix, poseSize, velocitySize int) (*Trajectory, error) {
	if poseSize < 0 || velocitySize < 0 {
		return nil, errors.Wrapf(ErrConstruction,
			"trajectory sizes must be non-negative, got pose=%d velocity=%d", poseSize, velocitySize)
	}
	r, c := data.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(ErrConstruction, "trajectory data must not have zero rows or columns")
	}
	if c != poseSize+velocitySize {
		return nil, errors.Wrapf(ErrConstruction, "trajectory data has %d columns, want %d+%d",
			c, poseSize, velocitySize)
	}
	t := &Trajectory{poseSize: poseSize, velocitySize: velocitySize}
	t.knots = rowsToStates(data, poseSize, velocitySize)
	return t, nil
}

func rowsToStates(data mat.Matrix, poseSize, velocitySize int) []State {
	r, c := data.Dims()
	knots := make([]State, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		mat.Row(row, i, data)
		knots[i] = State{data: row, poseSize: poseSize, velocitySize: velocitySize}
	}
	return knots
}

// Size returns the number of knot points.
func (t *Trajectory) Size() int         { return len(t.knots) }
func (t *Trajectory) Dim() int          { return t.poseSize + t.velocitySize }
func (t *Trajectory) PoseSize() int     { return t.poseSize }
func (t *Trajectory) VelocitySize() int { return t.velocitySize }

// At returns the knot point at index i. Negative indices count from the end.
// The returned State shares storage with the trajectory.
func (t *Trajectory) At(i int) (State, error) {
	idx, err := normalizeIndex(i, len(t.knots))
	if err != nil {
		return State{}, err
	}
	return t.knots[idx], nil
}

// Set replaces the knot point at index i with a copy of s.
func (t *Trajectory) Set(i int, s State) error {
	idx, err := normalizeIndex(i, len(t.knots))
	if err != nil {
		return err
	}
	if err := t.checkShape(s); err != nil {
		return err
	}
	t.knots[idx] = s.Clone()
	return nil
}

func (t *Trajectory) checkShape(s State) error {
	if s.PoseSize() != t.poseSize || s.VelocitySize() != t.velocitySize {
		return errors.Wrapf(ErrDimensionMismatch, "knot point shape (%d,%d) != trajectory shape (%d,%d)",
			s.PoseSize(), s.VelocitySize(), t.poseSize, t.velocitySize)
	}
	return nil
}

// Append adds a copy of s at the end.
func (t *Trajectory) Append(s State) error {
	return t.AddKnotPoint(s, len(t.knots))
}

// AddKnotPoint inserts a copy of s before index. Index must lie in [0, Size()].
func (t *Trajectory) AddKnotPoint(s State, index int) error {
	if err := t.checkShape(s); err != nil {
		return err
	}
	if index < 0 || index > len(t.knots) {
		return errors.Wrapf(ErrIndexOutOfRange, "insertion index %d must lie in [0, %d]", index, len(t.knots))
	}
	t.knots = append(t.knots, State{})
	copy(t.knots[index+1:], t.knots[index:])
	t.knots[index] = s.Clone()
	return nil
}

// AddKnotPoints inserts states[i] at indices[i]. Pairs are applied in
// ascending index order against the growing trajectory. On error the
// trajectory keeps the points inserted so far.
func (t *Trajectory) AddKnotPoints(states []State, indices []int) error {
	if len(states) != len(indices) {
		return errors.Wrapf(ErrInvalidArgument, "got %d states and %d indices", len(states), len(indices))
	}
	order := make([]int, len(indices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return indices[order[a]] < indices[order[b]] })
	for _, i := range order {
		if err := t.AddKnotPoint(states[i], indices[i]); err != nil {
			return err
		}
	}
	return nil
}

// RemoveKnotPoint deletes the knot point at index. The last remaining knot
// point cannot be removed.
func (t *Trajectory) RemoveKnotPoint(index int) error {
	if index < 0 || index >= len(t.knots) {
		return errors.Wrapf(ErrIndexOutOfRange, "removal index %d must lie in [0, %d)", index, len(t.knots))
	}
	if len(t.knots) == 1 {
		return errors.Wrap(ErrInvalidArgument, "cannot remove the only knot point")
	}
	t.knots = append(t.knots[:index], t.knots[index+1:]...)
	return nil
}

// RemoveKnotPoints deletes every listed index, highest first.
func (t *Trajectory) RemoveKnotPoints(indices []int) error {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, idx := range sorted {
		if err := t.RemoveKnotPoint(idx); err != nil {
			return err
		}
	}
	return nil
}

// Data returns the knot points as a Size()×Dim() matrix.
func (t *Trajectory) Data() *mat.Dense {
	m := mat.NewDense(len(t.knots), t.Dim(), nil)
	for i, s := range t.knots {
		m.SetRow(i, s.data)
	}
	return m
}

// SetData replaces all knot points. The column count must equal Dim().
func (t *Trajectory) SetData(data mat.Matrix) error {
	r, c := data.Dims()
	if r == 0 {
		return errors.Wrap(ErrInvalidArgument, "trajectory data must have at least one row")
	}
	if c != t.Dim() {
		return errors.Wrapf(ErrDimensionMismatch, "trajectory data has %d columns, want %d", c, t.Dim())
	}
	t.knots = rowsToStates(data, t.poseSize, t.velocitySize)
	return nil
}

// Concat returns a new trajectory holding the knot points of t followed by o.
func (t *Trajectory) Concat(o *Trajectory) (*Trajectory, error) {
	if t.poseSize != o.poseSize || t.velocitySize != o.velocitySize {
		return nil, errors.Wrapf(ErrDimensionMismatch, "trajectory shapes differ: (%d,%d) != (%d,%d)",
			t.poseSize, t.velocitySize, o.poseSize, o.velocitySize)
	}
	out := &Trajectory{
		knots:        make([]State, 0, len(t.knots)+len(o.knots)),
		poseSize:     t.poseSize,
		velocitySize: t.velocitySize,
	}
	for _, s := range t.knots {
		out.knots = append(out.knots, s.Clone())
	}
	for _, s := range o.knots {
		out.knots = append(out.knots, s.Clone())
	}
	return out, nil
}

func (t *Trajectory) Equal(o *Trajectory) bool {
	if t.poseSize != o.poseSize || t.velocitySize != o.velocitySize || len(t.knots) != len(o.knots) {
		return false
	}
	for i := range t.knots {
		if !t.knots[i].Equal(o.knots[i]) {
			return false
		}
	}
	return true
}
