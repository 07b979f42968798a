// Package pilots provides ready made playground pilots.
package pilots

import (
	"github.com/pkg/errors"

	"github.com/shrenikm/Morphac/internal/constructs"
	"github.com/shrenikm/Morphac/internal/control"
	"github.com/shrenikm/Morphac/internal/models"
	"github.com/shrenikm/Morphac/internal/playground"
)

// ControllerPilot feeds the robot's own state and the playground clock to a
// controller.
type ControllerPilot struct {
	Controller control.Controller
}

func (p *ControllerPilot) Execute(state *playground.State, uid int) (constructs.ControlInput, error) {
	s, err := state.GetRobotState(uid)
	if err != nil {
		return constructs.ControlInput{}, err
	}
	return p.Controller.Compute(s, state.Time())
}

// Zero always commands the zero input of the given size.
func Zero(size int) (*ControllerPilot, error) {
	c, err := control.NewZero(size)
	if err != nil {
		return nil, err
	}
	return &ControllerPilot{Controller: c}, nil
}

// Constant always commands the same input.
func Constant(values ...float64) (*ControllerPilot, error) {
	c, err := control.NewConstant(values...)
	if err != nil {
		return nil, err
	}
	return &ControllerPilot{Controller: c}, nil
}

// Manual commands whatever was last set on the returned controller.
func Manual(size int) (*ControllerPilot, *control.Manual, error) {
	c, err := control.NewManual(size)
	if err != nil {
		return nil, nil, err
	}
	return &ControllerPilot{Controller: c}, c, nil
}

// HeadingPilot turns a robot toward a fixed heading with a PID on θ while
// driving forward at Speed. The PID output is mapped onto each built in
// model's control input.
type HeadingPilot struct {
	PID   *control.PID
	Speed float64
}

func NewHeadingPilot(target, speed, kp, ki, kd float64) *HeadingPilot {
	pid := control.NewPID(kp, ki, kd, target)
	pid.Index = 2
	pid.Angular = true
	return &HeadingPilot{PID: pid, Speed: speed}
}

func (p *HeadingPilot) Execute(state *playground.State, uid int) (constructs.ControlInput, error) {
	r, err := state.GetRobot(uid)
	if err != nil {
		return constructs.ControlInput{}, err
	}
	turn, err := p.PID.Output(r.State(), state.Time())
	if err != nil {
		return constructs.ControlInput{}, err
	}

	switch m := r.KinematicModel().(type) {
	case *models.Dubin:
		return constructs.ControlInputFrom(turn), nil
	case *models.DiffDrive:
		// Wheel rates for forward speed v and yaw rate ω.
		base := p.Speed / m.Radius()
		diff := turn * m.Width() / (2 * m.Radius())
		return constructs.ControlInputFrom(base-diff, base+diff), nil
	case *models.Ackermann, *models.Tricycle:
		return constructs.ControlInputFrom(p.Speed, turn), nil
	}
	return constructs.ControlInput{}, errors.Wrapf(constructs.ErrInvalidArgument,
		"heading pilot does not support %s", playground.ModelName(r.KinematicModel()))
}
