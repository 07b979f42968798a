package playground

import (
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
)

// DefaultMapResolution is used when a playground builds its own map.
const DefaultMapResolution = 0.05

// Spec is the fixed configuration of a playground.
type Spec struct {
	Name string
	Dt   float64

	// Width and Height size the empty map built when none is supplied.
	Width  float64
	Height float64
}

func DefaultSpec() Spec {
	return Spec{
		Name:   "playground",
		Dt:     0.01,
		Width:  10,
		Height: 10,
	}
}

func (s Spec) Validate() error {
	if s.Dt <= 0 {
		return errors.Wrapf(constructs.ErrConstruction, "playground dt must be positive, got %g", s.Dt)
	}
	return nil
}
