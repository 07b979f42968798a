// Package integrators advances a State under a constant ControlInput using
// fixed step schemes. Each integrator is bound to one kinematic model and
// every result passes through the model's NormalizeState.
package integrators
