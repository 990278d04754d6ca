package storage

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/lavalamp/internal/metrics"
)

// TraceWriter appends metrics records to a CSV file, writing the header with
// the first record. It satisfies metrics.Sink.
type TraceWriter struct {
	file          *os.File
	headerWritten bool
}

// Create truncates or creates path.
func Create(path string) (*TraceWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace: %w", err)
	}
	return &TraceWriter{file: f}, nil
}

func (w *TraceWriter) Write(r metrics.Record) error {
	return w.WriteAll([]metrics.Record{r})
}

func (w *TraceWriter) WriteAll(records []metrics.Record) error {
	if len(records) == 0 {
		return nil
	}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

func (w *TraceWriter) Close() error {
	return w.file.Close()
}

// LoadTrace reads a file written by TraceWriter.
func LoadTrace(path string) ([]metrics.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []metrics.Record
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading trace %s: %w", path, err)
	}
	return records, nil
}
