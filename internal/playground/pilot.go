package playground

import "github.com/shrenikm/Morphac/internal/constructs"

// Pilot chooses the control input for robot uid given the whole playground.
type Pilot interface {
	Execute(state *State, uid int) (constructs.ControlInput, error)
}

// PilotFunc adapts a function to the Pilot interface.
type PilotFunc func(state *State, uid int) (constructs.ControlInput, error)

func (f PilotFunc) Execute(state *State, uid int) (constructs.ControlInput, error) {
	return f(state, uid)
}
