package sim

import (
	"math"

	"github.com/san-kum/lavalamp/internal/colorspace"
	"gonum.org/v1/gonum/spatial/r2"
)

// Blob is one simulated point source. Vel is in cells per tick.
type Blob struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Falling bool
}

// BlobSet is the collection of blobs. Its length is fixed after creation.
type BlobSet []Blob

func (s BlobSet) Clone() BlobSet {
	if s == nil {
		return nil
	}
	c := make(BlobSet, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every position and velocity is finite.
func (s BlobSet) IsValid() bool {
	for _, b := range s {
		if !finite(b.Pos) || !finite(b.Vel) {
			return false
		}
	}
	return true
}

// Falling counts blobs currently in falling mode.
func (s BlobSet) Falling() int {
	n := 0
	for _, b := range s {
		if b.Falling {
			n++
		}
	}
	return n
}

// Speeds returns |Vel| for each blob.
func (s BlobSet) Speeds() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = r2.Norm(b.Vel)
	}
	return out
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Params holds every tunable consulted by initialization, integration and
// colour mapping. It is read-only during a tick.
type Params struct {
	SpeedScale float64
	Jitter     float64

	// Initial velocity is drawn from [-VelRangeX, VelRangeX] x [-VelRangeY, VelRangeY].
	VelRangeX float64
	VelRangeY float64

	Buoyancy    float64
	FallGain    float64
	FallTrigger float64 // fraction of viewport height
	FallChance  float64 // per tick
	FallSettle  float64

	Threshold       float64
	BaseColor       colorspace.RGB
	Background      bool
	HueShift        float64 // degrees at the bottom row
	BackgroundScale float64
}

func DefaultParams() Params {
	return Params{
		SpeedScale:      1.0,
		Jitter:          0.1,
		VelRangeX:       0.6,
		VelRangeY:       0.3,
		Buoyancy:        0.2,
		FallGain:        0.6,
		FallTrigger:     0.75,
		FallChance:      0.015,
		FallSettle:      0.05,
		Threshold:       0.6,
		BaseColor:       colorspace.RGB{R: 255, G: 80, B: 20},
		Background:      true,
		HueShift:        60,
		BackgroundScale: 0.2,
	}
}
