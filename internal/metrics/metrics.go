package metrics

import "math"

// Metric folds a stream of records into one number.
type Metric interface {
	Name() string
	Observe(r Record)
	Value() float64
	Reset()
}

// Defaults returns the summary metrics reported by trace runs.
func Defaults() []Metric {
	return []Metric{
		NewMeanCoverage(),
		NewFallingRate(),
		NewMerges(),
		NewMaxRegions(),
	}
}

type MeanCoverage struct {
	sum     float64
	samples int
}

func NewMeanCoverage() *MeanCoverage { return &MeanCoverage{} }

func (m *MeanCoverage) Name() string { return "mean_coverage" }

func (m *MeanCoverage) Observe(r Record) {
	m.sum += r.Coverage
	m.samples++
}

func (m *MeanCoverage) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanCoverage) Reset() {
	m.sum = 0
	m.samples = 0
}

// FallingRate is the average fraction of blobs in falling mode.
type FallingRate struct {
	falling int
	blobs   int
}

func NewFallingRate() *FallingRate { return &FallingRate{} }

func (f *FallingRate) Name() string { return "falling_rate" }

func (f *FallingRate) Observe(r Record) {
	f.falling += r.Falling
	f.blobs += r.Blobs
}

func (f *FallingRate) Value() float64 {
	if f.blobs == 0 {
		return 0
	}
	return float64(f.falling) / float64(f.blobs)
}

func (f *FallingRate) Reset() {
	f.falling = 0
	f.blobs = 0
}

// Merges counts ticks where the number of regions dropped.
type Merges struct {
	prev   int
	count  int
	primed bool
}

func NewMerges() *Merges { return &Merges{} }

func (m *Merges) Name() string { return "merges" }

func (m *Merges) Observe(r Record) {
	if m.primed && r.Regions < m.prev {
		m.count++
	}
	m.prev = r.Regions
	m.primed = true
}

func (m *Merges) Value() float64 { return float64(m.count) }

func (m *Merges) Reset() { *m = Merges{} }

type MaxRegions struct {
	max float64
}

func NewMaxRegions() *MaxRegions { return &MaxRegions{} }

func (m *MaxRegions) Name() string { return "max_regions" }

func (m *MaxRegions) Observe(r Record) {
	m.max = math.Max(m.max, float64(r.Regions))
}

func (m *MaxRegions) Value() float64 { return m.max }

func (m *MaxRegions) Reset() { m.max = 0 }
