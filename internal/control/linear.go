package control

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/shrenikm/Morphac/internal/constructs"
)

// Linear is full state feedback u = -K(x - target).
type Linear struct {
	k      *mat.Dense
	target *mat.VecDense
}

// NewLinear takes an m×n gain for an n element state and m element input.
func NewLinear(k mat.Matrix, target constructs.State) (*Linear, error) {
	m, n := k.Dims()
	if m == 0 || n == 0 {
		return nil, errors.Wrap(constructs.ErrConstruction, "gain matrix must not be empty")
	}
	if n != target.Size() {
		return nil, errors.Wrapf(constructs.ErrConstruction, "gain has %d columns, target has %d elements", n, target.Size())
	}
	return &Linear{k: mat.DenseCopyOf(k), target: mat.NewVecDense(n, target.Data())}, nil
}

func (l *Linear) Compute(s constructs.State, _ float64) (constructs.ControlInput, error) {
	m, n := l.k.Dims()
	if s.Size() != n {
		return constructs.ControlInput{}, errors.Wrapf(constructs.ErrDimensionMismatch, "state has %d elements, gain expects %d", s.Size(), n)
	}
	var e mat.VecDense
	e.SubVec(mat.NewVecDense(n, s.Data()), l.target)

	u := mat.NewVecDense(m, nil)
	u.MulVec(l.k, &e)
	u.ScaleVec(-1, u)
	return constructs.ControlInputFrom(u.RawVector().Data...), nil
}
