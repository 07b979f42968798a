package control

import (
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
)

type Zero struct {
	size int
}

func NewZero(size int) (*Zero, error) {
	if size <= 0 {
		return nil, errors.Wrapf(constructs.ErrConstruction, "control input size must be positive, got %d", size)
	}
	return &Zero{size: size}, nil
}

func (z *Zero) Size() int { return z.size }

func (z *Zero) Compute(constructs.State, float64) (constructs.ControlInput, error) {
	return constructs.NewControlInput(z.size)
}

// Constant returns the same input at every call.
type Constant struct {
	u constructs.ControlInput
}

func NewConstant(values ...float64) (*Constant, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(constructs.ErrConstruction, "constant control input must not be empty")
	}
	return &Constant{u: constructs.ControlInputFrom(values...)}, nil
}

func (c *Constant) Compute(constructs.State, float64) (constructs.ControlInput, error) {
	return c.u.Clone(), nil
}
