package control

import (
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
)

// Manual passes a control vector set from outside the simulation, such as
// keyboard driving in the live view.
type Manual struct {
	u constructs.ControlInput
}

func NewManual(size int) (*Manual, error) {
	u, err := constructs.NewControlInput(size)
	if err != nil {
		return nil, err
	}
	return &Manual{u: u}, nil
}

// SetControl replaces the stored vector. The size must not change.
func (c *Manual) SetControl(values ...float64) error {
	if len(values) != c.u.Size() {
		return errors.Wrapf(constructs.ErrDimensionMismatch, "manual control expects %d values, got %d", c.u.Size(), len(values))
	}
	c.u = constructs.ControlInputFrom(values...)
	return nil
}

// Nudge adds delta to element i of the stored vector.
func (c *Manual) Nudge(i int, delta float64) error {
	v, err := c.u.At(i)
	if err != nil {
		return err
	}
	return c.u.Set(i, v+delta)
}

func (c *Manual) Compute(constructs.State, float64) (constructs.ControlInput, error) {
	return c.u.Clone(), nil
}

func (c *Manual) Size() int { return c.u.Size() }

// Control returns a copy of the stored vector.
func (c *Manual) Control() constructs.ControlInput { return c.u.Clone() }

// Stop zeroes the stored vector.
func (c *Manual) Stop() { c.u = c.u.CreateLike() }
