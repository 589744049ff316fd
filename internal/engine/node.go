package engine

// kind discriminates the three node variants without resorting to deep
// interface inheritance: a signal, a computed and an effect are all the
// same node shape, distinguished by kind and by which function fields
// are populated. This keeps the hot paths (track, notify, refresh)
// monomorphic over a single concrete type.
type kind uint8

const (
	kindSignal kind = iota
	kindComputed
	kindEffect
)

// EqualFunc reports whether two values should be treated as the same
// for the purposes of write/refresh suppression. A panicking comparator
// is treated as "unequal" (see equalValues).
type EqualFunc func(a, b any) bool

type node struct {
	graph *graph
	kind  kind
	id    uint64
	label string

	fl      flags
	version uint64

	value, previousValue, initialValue any
	initialized                        bool

	err error

	equal       EqualFunc
	autoDispose bool

	// compute is nil for signals. It is invoked with the node itself so
	// effect/computed adapters can reach back into engine state (e.g.
	// to read n.previousValue for update functions).
	compute func(*node) any

	// cleanup is the function an effect's last run returned, run before
	// the next run and on dispose. Unused by signals and computeds.
	cleanup func()

	sourcesHead, sourcesTail *edge
	targetsHead, targetsTail *edge
	resumeCursor             *edge

	// globalVersionAtRefresh is the global version observed at this
	// computed's last refresh; refresh is a no-op re-entry if it hasn't
	// moved (see graph.globalVersion).
	globalVersionAtRefresh uint64

	disposeCallbacks []func()
}

func newNode(g *graph, k kind) *node {
	g.nextID++
	return &node{
		graph: g,
		kind:  k,
		id:    g.nextID,
		equal: defaultEqual,
	}
}

func defaultEqual(a, b any) bool { return a == b }

// equalValues guards against a comparator that panics (e.g. comparing
// non-comparable dynamic types with ==): a panicking comparator is
// treated as "the values are unequal", the safe direction since it
// causes an extra notify rather than a missed one.
func equalValues(eq EqualFunc, a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return eq(a, b)
}

func (n *node) onFirstTarget() {
	if n.kind == kindComputed {
		n.fl |= flagOutdated | flagTracking
		for e := n.sourcesHead; e != nil; e = e.nextInSources {
			e.source.addTarget(e)
		}
	}
}

func (n *node) onLastTargetRemoved() {
	if n.kind == kindComputed {
		n.fl &^= flagTracking
		for e := n.sourcesHead; e != nil; e = e.nextInSources {
			e.source.removeTarget(e)
		}
	}
	if n.autoDispose && !n.fl.has(flagDisposed) {
		n.dispose()
	}
}

// notify marks a computed or effect OUTDATED|NOTIFIED and propagates the
// mark depth-first through its own targets. It performs no computation;
// refresh is the pull side that actually recomputes. Effects have no
// targets of their own; they are scheduled instead of walked further.
func (n *node) notify() {
	if n.fl.has(flagNotified) {
		return
	}
	n.fl |= flagOutdated | flagNotified

	if n.kind == kindEffect {
		n.graph.scheduleEffect(n)
		return
	}

	for e := n.targetsHead; e != nil; e = e.nextInTargets {
		e.target.notify()
	}
}

// prepareSources rotates the sources list so every edge is a candidate
// for removal; the resume cursor starts at the old head. Call on entry
// to a compute/effect run.
func (n *node) prepareSources() {
	for e := n.sourcesHead; e != nil; e = e.nextInSources {
		e.usedThisRun = false
	}
	n.resumeCursor = n.sourcesHead
}

// cleanupSources unlinks every edge not touched during the run that
// followed prepareSources, undoing its target-side installation too.
// Call on exit from a compute/effect run.
func (n *node) cleanupSources() {
	e := n.sourcesHead
	for e != nil {
		next := e.nextInSources
		if !e.usedThisRun {
			n.unlinkSourceEdge(e)
			if e.inTargets {
				e.source.removeTarget(e)
			}
		}
		e = next
	}
	n.resumeCursor = nil
}

// clearAllSources unconditionally drops every source edge, used by
// dispose (which doesn't go through the prepare/cleanup run protocol).
func (n *node) clearAllSources() {
	e := n.sourcesHead
	for e != nil {
		next := e.nextInSources
		if e.inTargets {
			e.source.removeTarget(e)
		}
		e.prevInSources, e.nextInSources = nil, nil
		e = next
	}
	n.sourcesHead, n.sourcesTail = nil, nil
	n.resumeCursor = nil
}

// clearAllTargets unconditionally drops every edge where n is the
// source, used by dispose.
func (n *node) clearAllTargets() {
	e := n.targetsHead
	for e != nil {
		next := e.nextInTargets
		e.prevInTargets, e.nextInTargets = nil, nil
		e.inTargets = false
		e.target.unlinkSourceEdge(e)
		e = next
	}
	n.targetsHead, n.targetsTail = nil, nil
}

func (n *node) onDispose(fn func()) func() {
	n.disposeCallbacks = append(n.disposeCallbacks, fn)
	idx := len(n.disposeCallbacks) - 1
	return func() {
		if idx < len(n.disposeCallbacks) {
			n.disposeCallbacks[idx] = nil
		}
	}
}

func (n *node) dispose() {
	if n.fl.has(flagDisposed) {
		return
	}
	n.fl |= flagDisposed

	n.clearAllSources()
	n.clearAllTargets()

	if n.cleanup != nil {
		cleanup := n.cleanup
		n.cleanup = nil
		cleanup()
	}

	callbacks := n.disposeCallbacks
	n.disposeCallbacks = nil
	for _, cb := range callbacks {
		if cb != nil {
			cb()
		}
	}
}
