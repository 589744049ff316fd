package engine

// newSignalNode builds a signal-kind node with its initial value
// already set and version 1, matching the "written at creation"
// lifecycle in the component design (a signal always has a value, it
// never starts Outdated).
func newSignalNode(g *graph, initial any, eq EqualFunc, label string, autoDispose bool) *node {
	n := newNode(g, kindSignal)
	n.value = initial
	n.initialValue = initial
	n.initialized = true
	n.version = 1
	n.label = label
	n.autoDispose = autoDispose
	if eq != nil {
		n.equal = eq
	}
	g.hooks.fireNodeCreated(n)
	return n
}

// read returns the current value and, if a computation is in
// progress, records this signal as one of its dependencies.
func (n *node) read() any {
	if n.fl.has(flagDisposed) {
		n.graph.hooks.fireReadAfterDispose(n)
	}
	n.graph.track(n)
	return n.value
}

func (n *node) peek() any {
	return n.value
}

// write sets a new value, bumping version and notifying dependents only
// when the value actually changed (or force is true). It returns
// WriteAfterDisposeError if the signal has already been disposed, and
// otherwise propagates whatever the resulting effect flush returns.
func (n *node) write(v any, force bool) error {
	if n.fl.has(flagDisposed) {
		return &WriteAfterDisposeError{Label: n.label}
	}

	if !force && n.initialized && equalValues(n.equal, n.value, v) {
		return nil
	}

	n.previousValue = n.value
	n.value = v
	n.initialized = true
	n.version++
	n.graph.globalVersion++

	n.graph.hooks.fireSignalUpdated(n, v)

	for e := n.targetsHead; e != nil; e = e.nextInTargets {
		e.target.notify()
	}

	return n.graph.maybeFlush()
}
