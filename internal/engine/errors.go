package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoViewport indicates the surface could not report its size.
	ErrNoViewport = errors.New("engine: viewport unavailable")

	// ErrSurfaceClosed is returned by a surface whose display has gone away.
	// Run treats it as a clean shutdown.
	ErrSurfaceClosed = errors.New("engine: surface closed")
)

// ViewportError wraps a failed extent measurement with the tick it happened on.
type ViewportError struct {
	Tick uint64
	Err  error
}

func (e *ViewportError) Error() string {
	return fmt.Sprintf("%v at tick %d: %v", ErrNoViewport, e.Tick, e.Err)
}

func (e *ViewportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNoViewport) match any ViewportError.
func (e *ViewportError) Is(target error) bool {
	return target == ErrNoViewport
}
