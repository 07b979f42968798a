package playground

import (
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/robot"
)

// RobotOracle and PilotOracle are map style views over the registrations.
// A missing key yields constructs.ErrKeyNotFound, unlike the accessor
// methods which yield constructs.ErrNotFound.

type RobotOracle struct {
	state *State
}

func (o RobotOracle) Get(uid int) (*robot.Robot, error) {
	e, ok := o.state.entries[uid]
	if !ok {
		return nil, errors.Wrapf(constructs.ErrKeyNotFound, "robot oracle has no key %d", uid)
	}
	return e.robot, nil
}

func (o RobotOracle) Keys() []int { return o.state.UIDs() }
func (o RobotOracle) Len() int    { return o.state.NumRobots() }

type PilotOracle struct {
	state *State
}

func (o PilotOracle) Get(uid int) (Pilot, error) {
	e, ok := o.state.entries[uid]
	if !ok {
		return nil, errors.Wrapf(constructs.ErrKeyNotFound, "pilot oracle has no key %d", uid)
	}
	return e.pilot, nil
}

func (o PilotOracle) Keys() []int { return o.state.UIDs() }
func (o PilotOracle) Len() int    { return o.state.NumRobots() }
