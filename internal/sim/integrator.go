package sim

import (
	"math"

	"github.com/san-kum/lavalamp/internal/random"
	"gonum.org/v1/gonum/spatial/r2"
)

// topGuard keeps Lift strictly below 1 at y = 0.
const topGuard = 1 - 1e-9

// Lift is the height-normalized buoyancy factor: 1 at the bottom (y = 0),
// 0 at the top (y = h), clamped to [0, topGuard].
func Lift(y, h float64) float64 {
	if h <= 0 {
		return 0
	}
	f := 1 - y/h
	if f > topGuard {
		return topGuard
	}
	if f < 0 {
		return 0
	}
	return f
}

// Step advances every blob by one tick inside a w x h viewport and returns
// the new set. The input set is not modified.
//
// Falling is expressed as a negative vertical resultant that is added to the
// position like any other displacement, so a falling blob always moves down.
//
// Velocities well above the configured nominal can overshoot a boundary in a
// single tick before reflection fires; Step does not correct that.
func Step(set BlobSet, w, h float64, p Params, rnd random.Source) BlobSet {
	next, _ := StepResets(set, w, h, p, rnd)
	return next
}

// StepResets is Step that also reports how many blobs had a non-finite
// position or velocity reset during the tick.
func StepResets(set BlobSet, w, h float64, p Params, rnd random.Source) (BlobSet, int) {
	next := set.Clone()
	resets := 0
	for i := range next {
		var reset bool
		next[i], reset = stepBlob(next[i], w, h, p, rnd)
		if reset {
			resets++
		}
	}
	return next, resets
}

func stepBlob(b Blob, w, h float64, p Params, rnd random.Source) (Blob, bool) {
	f := Lift(b.Pos.Y, h)
	res := r2.Vec{X: b.Vel.X, Y: b.Vel.Y + p.SpeedScale*p.Buoyancy*f}

	if !b.Falling && h > 0 && b.Pos.Y/h > p.FallTrigger && rnd.Uniform(0, 1) < p.FallChance {
		b.Falling = true
	}
	if b.Falling {
		res.Y -= p.SpeedScale * p.FallGain * (1 - f)
		eps := rnd.Uniform(0, p.FallSettle) * p.SpeedScale
		if math.Abs(res.Y) < eps {
			b.Falling = false
		}
	}

	j := rnd.Uniform(1-p.Jitter, 1+p.Jitter)
	d := r2.Scale(j, res)

	if leaves(b.Pos.X+d.X, w) {
		b.Vel.X, d.X = -b.Vel.X, -d.X
	}
	if leaves(b.Pos.Y+d.Y, h) {
		b.Vel.Y, d.Y = -b.Vel.Y, -d.Y
	}

	b.Pos = r2.Add(b.Pos, d)
	reset := false
	if !finite(b.Pos) {
		b.Pos = r2.Vec{X: w / 2, Y: h / 2}
		reset = true
	}
	if !finite(b.Vel) {
		b.Vel = r2.Vec{}
		reset = true
	}
	return b, reset
}

func leaves(v, extent float64) bool {
	return v < 0 || v >= extent
}
