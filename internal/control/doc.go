// Package control provides the control laws pilots are built from.
//
// Controllers map a robot state and the simulation time to a control input:
//
//   - [Zero]: always the zero input
//   - [Constant]: a fixed input
//   - [Manual]: an input set from outside, for interactive driving
//   - [PID]: feedback on one state element, optionally angular
//   - [Linear]: full state feedback u = -K(x - target)
//
// # Usage
//
//	pid := control.NewPID(2.0, 0.0, 0.1, math.Pi/2) // Kp, Ki, Kd, setpoint
//	pid.Index, pid.Angular = 2, true
//	u, err := pid.Compute(robot.State(), t)
//
// PID exposes its gains through GetParams and SetParam.
package control

import "github.com/shrenikm/Morphac/internal/constructs"

// Controller computes the control input for a state at time t.
type Controller interface {
	Compute(s constructs.State, t float64) (constructs.ControlInput, error)
}
