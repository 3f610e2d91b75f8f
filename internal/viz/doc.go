// Package viz renders kinematic chains in the terminal.
//
//   - [RenderMatrix]: a 4x4 transform as a go-pretty table
//   - [RenderPose]: position and orientation quaternion
//   - [RenderReport]: verification checks with pass/fail marks
//   - [Model]: Bubble Tea program that nudges joint variables live
//   - [Canvas]: Braille pixel canvas for the arm's XY projection
//
// # Key Bindings
//
//	Tab/Shift+Tab - Select joint variable
//	Up/K Down/J   - Nudge the selected variable
//	+/-           - Grow or shrink the nudge step
//	R             - Reset every variable
//	Q             - Quit
package viz
