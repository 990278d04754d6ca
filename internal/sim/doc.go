// Package sim owns the simulated blobs and advances them one tick at a time.
//
// The package defines:
//
//   - [Blob]: one point source with position, velocity and falling flag
//   - [BlobSet]: the fixed-size collection created once per run
//   - [Params]: the tunables read during a tick
//   - [Step]: the per-tick integrator
//
// # Coordinates
//
// Positions are in viewport cells. y = 0 is the bottom of the viewport and
// grows upward; renderers flip rows when painting.
//
// # Example
//
//	rnd := random.New(seed)
//	set := sim.NewBlobSet(w, h, density, params, rnd)
//	for {
//		set = sim.Step(set, w, h, params, rnd)
//	}
//
// # Thread Safety
//
// Step never mutates its input, but a [random.Source] is not safe for
// concurrent use. One goroutine owns a simulation.
package sim
