package reactive

import (
	"errors"

	"github.com/flowgraph/reactive/internal/engine"
)

// CycleError is raised as a panic from the reading site when a read
// depends on itself directly or transitively. A computed boundary
// caches it wrapped in a ComputeError and panics with that on read; an
// effect boundary returns it as an error.
type CycleError = engine.CycleError

// WriteAfterDisposeError is returned by Signal.Write on a disposed
// signal.
type WriteAfterDisposeError = engine.WriteAfterDisposeError

// ComputeError wraps whatever a compute function panicked with.
type ComputeError = engine.ComputeError

// EffectReentryError is returned when an effect re-schedules itself,
// via its own writes, more times than a graph's effect re-entry limit
// (1000) allows within one flush.
type EffectReentryError = engine.EffectReentryError

func IsCycleError(err error) bool {
	var e *CycleError
	return errors.As(err, &e)
}

func IsWriteAfterDispose(err error) bool {
	var e *WriteAfterDisposeError
	return errors.As(err, &e)
}

func IsComputeError(err error) bool {
	var e *ComputeError
	return errors.As(err, &e)
}

func IsEffectReentryLimit(err error) bool {
	var e *EffectReentryError
	return errors.As(err, &e)
}
