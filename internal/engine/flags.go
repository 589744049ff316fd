package engine

// flags is the per-node status word. Bit layout follows the flag set
// named in the propagation design: a node's state is always one of a
// small combination of these, never a separate enum per node kind.
type flags uint8

const (
	flagOutdated flags = 1 << iota
	flagTracking
	flagRunning
	flagNotified
	flagHasError
	flagDisposed
)

func (f flags) has(bit flags) bool { return f&bit != 0 }
