// Package models implements the kinematic models that drive robots.
//
// A model maps (state, control input) to a state derivative. Every model has
// fixed pose, velocity and control input sizes; ComputeStateDerivative
// rejects inputs of any other shape with constructs.ErrDimensionMismatch
// before evaluating anything.
//
// Built in models:
//   - Ackermann: car-like steering with front wheel correction
//   - DiffDrive: two independently driven wheels
//   - Dubin: constant forward speed, controlled turn rate
//   - Tricycle: single steered front wheel
//
// User models implement KinematicModel, usually by embedding Base.
package models
