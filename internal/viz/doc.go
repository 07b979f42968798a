// Package viz draws playgrounds in the terminal.
//
// [Model] is a Bubble Tea program that ticks a playground and renders the map,
// robot footprints and their recent trails on a braille [Canvas]. [Picker] is
// a small menu used to choose a scenario preset before the live view starts.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	Tab   - Select next robot
//	+/-   - Ticks per frame
//	T     - Cycle color themes
//	Arrows, S - Drive the manual robot, stop it
//	?     - Show help overlay
//	Q     - Quit
package viz
