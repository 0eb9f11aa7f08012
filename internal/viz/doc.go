// Package viz provides the terminal explorer for material properties.
//
// The explorer is a Bubble Tea program that evaluates one material at a cure
// state and redraws on every key press:
//
//	←/→   - Decrease/increase phi
//	↑/↓   - Raise/lower temperature
//	tab   - Next material (shift+tab for previous)
//	p     - Cycle the property drawn in the sparkline
//	t     - Cycle color themes
//	r     - Reset to the starting state
//	q     - Quit
//
// Invalid states, such as phi outside [0, 1], are shown inline rather than
// clamped.
package viz
