// Package engine drives the animation: it owns the blob set, advances it one
// tick at a time and hands coloured frames to a Surface.
//
// The package defines:
//
//   - [Engine]: the single owner of simulation state
//   - [Surface]: what a renderer must provide (extent, paint, input poll)
//   - [Frame]: one rendered tick, rows ordered top to bottom
//   - [Observer]: hooks notified after every tick (metrics, scenarios)
//
// # Loop
//
//	e, _ := engine.New(engine.Options{Density: 1.25, Params: sim.DefaultParams()})
//	err := e.Run(ctx, surface)
//
// Each iteration measures the surface, ticks, renders and then waits in
// Surface.Poll for at most the frame interval. The loop ends on SignalQuit,
// on a closed surface or when ctx is done.
//
// Surfaces that own their own event loop (Bubble Tea) call [Engine.Tick]
// directly instead of Run.
//
// # Thread Safety
//
// An Engine is not safe for concurrent use.
package engine
