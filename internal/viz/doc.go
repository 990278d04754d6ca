// Package viz shows the lava lamp in the terminal through Bubble Tea.
//
// Bubble Tea owns the event loop, so the [Model] calls [engine.Engine.Tick]
// on every TickMsg instead of going through engine.Run. Each frame is drawn
// as runs of background-coloured spaces rendered with lipgloss.
//
// # Key Bindings
//
//	q, Ctrl+C - Quit
//	Space     - Pause/Resume
//	T         - Cycle colour themes
//	B         - Toggle background tint
//	R         - Re-seed the blobs
//	?         - Toggle the stats HUD
package viz
