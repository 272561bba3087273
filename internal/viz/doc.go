// Package viz paints the terminal with the color field.
//
// The live view is a Bubble Tea program: every frame ticks the scheduler (or
// the hover walk) and fills the screen with the result, graded down to the
// accent color. A themed status panel shows the mode, the current leg and a
// history of gray levels.
//
// # Key Bindings
//
//	w     - Ease to white
//	W     - Jump to white
//	r     - Resume the walk
//	h     - Toggle the hover view
//	Space - Start/stop hovering
//	t     - Cycle panel themes
//	p     - Hide/show the panel
//	?     - Show help
package viz
