package constructs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// vector is the storage shared by Pose, Velocity and ControlInput.
type vector struct {
	data []float64
}

func newVector(kind string, size int) (vector, error) {
	if size < 0 {
		return vector{}, errors.Wrapf(ErrConstruction, "%s size must be non-negative, got %d", kind, size)
	}
	return vector{data: make([]float64, size)}, nil
}

func vectorFrom(data []float64) vector {
	c := make([]float64, len(data))
	copy(c, data)
	return vector{data: c}
}

// normalizeIndex maps a possibly negative index onto [0, size).
func normalizeIndex(i, size int) (int, error) {
	if i < -size || i >= size {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "index %d out of range for size %d", i, size)
	}
	if i < 0 {
		i += size
	}
	return i, nil
}

// Size returns the number of elements.
func (v vector) Size() int { return len(v.data) }

// IsEmpty reports whether the container has no elements.
func (v vector) IsEmpty() bool { return len(v.data) == 0 }

// At returns element i. Negative indices count from the end.
func (v vector) At(i int) (float64, error) {
	idx, err := normalizeIndex(i, len(v.data))
	if err != nil {
		return 0, err
	}
	return v.data[idx], nil
}

// Set writes element i. Negative indices count from the end.
func (v vector) Set(i int, val float64) error {
	idx, err := normalizeIndex(i, len(v.data))
	if err != nil {
		return err
	}
	v.data[idx] = val
	return nil
}

// Data returns a copy of the elements.
func (v vector) Data() []float64 {
	c := make([]float64, len(v.data))
	copy(c, v.data)
	return c
}

func (v vector) String() string {
	parts := make([]string, len(v.data))
	for i, x := range v.data {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v vector) equal(o vector) bool {
	return len(v.data) == len(o.data) && floats.Equal(v.data, o.data)
}

func (v vector) approxEqual(o vector, tol float64) bool {
	return len(v.data) == len(o.data) && floats.EqualApprox(v.data, o.data, tol)
}

func (v vector) checkSize(kind string, o vector) error {
	if len(v.data) != len(o.data) {
		return errors.Wrapf(ErrDimensionMismatch, "%s sizes differ: %d != %d", kind, len(v.data), len(o.data))
	}
	return nil
}

func (v vector) add(kind string, o vector) (vector, error) {
	if err := v.checkSize(kind, o); err != nil {
		return vector{}, err
	}
	out := make([]float64, len(v.data))
	floats.AddTo(out, v.data, o.data)
	return vector{data: out}, nil
}

func (v vector) sub(kind string, o vector) (vector, error) {
	if err := v.checkSize(kind, o); err != nil {
		return vector{}, err
	}
	out := make([]float64, len(v.data))
	floats.SubTo(out, v.data, o.data)
	return vector{data: out}, nil
}

func (v vector) scale(k float64) vector {
	out := make([]float64, len(v.data))
	floats.ScaleTo(out, k, v.data)
	return vector{data: out}
}
