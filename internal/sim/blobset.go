package sim

import (
	"math"

	"github.com/san-kum/lavalamp/internal/random"
	"gonum.org/v1/gonum/spatial/r2"
)

// BlobCount returns floor(((w*h)/density)^(1/3)). The cube root keeps large
// viewports sparse. Non-positive inputs give zero.
func BlobCount(w, h int, density float64) int {
	if w <= 0 || h <= 0 || density <= 0 || math.IsNaN(density) || math.IsInf(density, 0) {
		return 0
	}
	n := math.Cbrt(float64(w) * float64(h) / density)
	// Cbrt of an exact cube can land a hair below the integer.
	if r := math.Round(n); math.Abs(n-r) < 1e-9 {
		n = r
	}
	return int(math.Floor(n))
}

// NewBlobSet places BlobCount(w, h, density) blobs uniformly in [0,w) x [0,h)
// with velocities drawn from the configured ranges and scaled by SpeedScale.
func NewBlobSet(w, h int, density float64, p Params, rnd random.Source) BlobSet {
	n := BlobCount(w, h, density)
	set := make(BlobSet, n)
	for i := range set {
		set[i] = Blob{
			Pos: r2.Vec{
				X: rnd.Uniform(0, float64(w)),
				Y: rnd.Uniform(0, float64(h)),
			},
			Vel: r2.Scale(p.SpeedScale, r2.Vec{
				X: rnd.Uniform(-p.VelRangeX, p.VelRangeX),
				Y: rnd.Uniform(-p.VelRangeY, p.VelRangeY),
			}),
		}
	}
	return set
}

// Rescale maps positions from an old viewport onto a new one, keeping each
// blob at the same relative place. Velocities are unchanged.
func (s BlobSet) Rescale(oldW, oldH, newW, newH int) BlobSet {
	out := s.Clone()
	if oldW <= 0 || oldH <= 0 || newW <= 0 || newH <= 0 {
		return out
	}
	sx := float64(newW) / float64(oldW)
	sy := float64(newH) / float64(oldH)
	for i := range out {
		out[i].Pos.X = inside(out[i].Pos.X*sx, float64(newW))
		out[i].Pos.Y = inside(out[i].Pos.Y*sy, float64(newH))
	}
	return out
}

// inside clamps v to [0, extent).
func inside(v, extent float64) float64 {
	if v < 0 {
		return 0
	}
	if v >= extent {
		return math.Nextafter(extent, 0)
	}
	return v
}
