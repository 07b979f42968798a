// Package playground runs several robots side by side.
//
// Each registered robot has a UID, a Pilot that chooses its control input and
// an Integrator that advances its state. The three are stored together in one
// record per UID, so a robot can never exist without its pilot and
// integrator.
//
// One call to Playground.Execute is one tick. Robots are processed in
// ascending UID order and each robot's new state is written back before the
// next pilot runs, so a pilot sees the already updated states of robots with
// smaller UIDs. The clock advances by Spec.Dt once every robot has been
// stepped. A failing tick is not rolled back: robots processed before the
// failure keep their new state and the clock does not advance.
package playground
