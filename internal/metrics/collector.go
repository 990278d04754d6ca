package metrics

import (
	"log/slog"

	"github.com/san-kum/lavalamp/internal/engine"
)

// Sink receives each record as it is produced.
type Sink interface {
	Write(r Record) error
}

// Collector is an engine observer that records every tick, feeds the
// summary metrics and forwards records to an optional sink. It keeps at
// most Capacity records in memory; zero keeps everything.
type Collector struct {
	Capacity int

	records []Record
	metrics []Metric
	sink    Sink
	log     *slog.Logger
	err     error
}

func NewCollector(capacity int, ms ...Metric) *Collector {
	return &Collector{
		Capacity: capacity,
		metrics:  ms,
		log:      slog.New(slog.DiscardHandler),
	}
}

// WithSink streams records to s. The first write error stops streaming and
// is reported by Err.
func (c *Collector) WithSink(s Sink) *Collector {
	c.sink = s
	return c
}

// WithLogger logs each record at debug level.
func (c *Collector) WithLogger(l *slog.Logger) *Collector {
	if l != nil {
		c.log = l
	}
	return c
}

func (c *Collector) OnTick(e *engine.Engine, f *engine.Frame) {
	r := NewRecord(f, e.Grid(), e.Blobs(), e.Params().Threshold)
	c.Add(r)
}

// Add records r as if it had been observed from the engine.
func (c *Collector) Add(r Record) {
	c.records = append(c.records, r)
	if c.Capacity > 0 && len(c.records) > c.Capacity {
		c.records = c.records[len(c.records)-c.Capacity:]
	}
	for _, m := range c.metrics {
		m.Observe(r)
	}
	c.log.Debug("tick", "record", r)

	if c.sink != nil && c.err == nil {
		if err := c.sink.Write(r); err != nil {
			c.err = err
			c.log.Error("trace write failed", "error", err)
		}
	}
}

func (c *Collector) Records() []Record { return c.records }

func (c *Collector) Latest() (Record, bool) {
	if len(c.records) == 0 {
		return Record{}, false
	}
	return c.records[len(c.records)-1], true
}

// Series extracts one column from the retained records, oldest first.
func (c *Collector) Series(col func(Record) float64) []float64 {
	out := make([]float64, len(c.records))
	for i, r := range c.records {
		out[i] = col(r)
	}
	return out
}

// Summary returns the metric values by name.
func (c *Collector) Summary() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (c *Collector) Metrics() []Metric { return c.metrics }

func (c *Collector) Err() error { return c.err }

func (c *Collector) Reset() {
	c.records = nil
	c.err = nil
	for _, m := range c.metrics {
		m.Reset()
	}
}

// Column accessors for Series.
var (
	CoverageOf = func(r Record) float64 { return r.Coverage }
	RegionsOf  = func(r Record) float64 { return float64(r.Regions) }
	FallingOf  = func(r Record) float64 { return float64(r.Falling) }
	SpeedOf    = func(r Record) float64 { return r.MeanSpeed }
)
