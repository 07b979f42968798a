// Package constructs holds the vector algebra shared by every other package:
// Pose, Velocity, ControlInput, State and Trajectory.
//
// Pose, Velocity and ControlInput are thin wrappers over a float slice.
// Arithmetic (Add, Sub, Scale) always allocates a fresh value. The Pose and
// Velocity accessors on State are the exception: they return views that share
// the State's backing storage, so Set on the returned value writes through.
package constructs
