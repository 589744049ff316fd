package engine

// Graph and Node are the exported facade over the unexported graph/node
// machinery: everything outside this package reaches the engine only
// through these two types and the functions below, the same shape as
// alien's *ReactiveSystem-plus-signal-handle split, generalized so the
// public reactive package can build its typed Signal[T]/Computed[T]
// wrappers on top without reaching into engine internals.
type Graph = graph
type Node = node

func NewGraph() *Graph { return newGraph() }

func (g *Graph) SetHooks(h Hooks) { g.hooks = h }
func (g *Graph) GetHooks() Hooks  { return g.hooks }

func (g *Graph) Batch(fn func()) error { return g.batch(fn) }
func (g *Graph) Untracked(fn func())   { g.untracked(fn) }

func (g *Graph) NewSignal(initial any, eq EqualFunc, label string, autoDispose bool) *Node {
	return newSignalNode(g, initial, eq, label, autoDispose)
}

func (g *Graph) NewComputed(compute func(*Node) any, eq EqualFunc, label string, autoDispose bool) *Node {
	return newComputedNode(g, compute, eq, label, autoDispose)
}

func (g *Graph) NewEffect(body func(*Node) any, label string) (*Node, error) {
	return newEffectNode(g, body, label)
}

// Read returns the current value, refreshing a computed if it is
// outdated and registering a dependency on whoever is currently being
// evaluated. Signals and computeds share this entry point; effects are
// never read.
func (n *Node) Read() any {
	if n.kind == kindComputed {
		return n.computedRead()
	}
	return n.read()
}

// Peek returns the current value without registering a dependency. On
// a computed it still refreshes first, so the value returned is never
// stale, it simply isn't tracked. A disposed computed never refreshes;
// it just returns its last value, same as Read.
func (n *Node) Peek() any {
	if n.kind == kindComputed {
		if n.fl.has(flagDisposed) {
			n.graph.hooks.fireReadAfterDispose(n)
			return n.value
		}
		n.refresh()
		if n.fl.has(flagHasError) {
			panic(n.err)
		}
		return n.value
	}
	return n.peek()
}

// Write sets a signal's value. Calling it on a computed is a caller
// error; the reactive package never does so.
func (n *Node) Write(v any, force bool) error { return n.write(v, force) }

// Recompute forces an immediate recompute of a computed.
func (n *Node) Recompute() { n.recompute() }

// OverrideWith refreshes a computed, then forces it to a specific
// value; compute runs only if that refresh needs it.
func (n *Node) OverrideWith(v any, force bool) error { return n.overrideWith(v, force) }

func (n *Node) PreviousValue() any { return n.previousValue }
func (n *Node) InitialValue() any  { return n.initialValue }
func (n *Node) Version() uint64    { return n.version }
func (n *Node) Disposed() bool     { return n.fl.has(flagDisposed) }
func (n *Node) GlobalID() uint64   { return n.id }
func (n *Node) Label() string      { return n.label }

func (n *Node) OnDispose(fn func()) func() { return n.onDispose(fn) }
func (n *Node) Dispose()                   { n.dispose() }

// Subscribe registers fn to run once now and again every time the
// node's value changes, implemented as an effect whose only source is
// n. The returned func stops it.
func (n *Node) Subscribe(fn func(v any)) func() {
	eff, _ := newEffectNode(n.graph, func(*node) any {
		fn(n.Read())
		return nil
	}, n.label)
	return func() { eff.dispose() }
}

func (n *Node) Kind() string {
	switch n.kind {
	case kindSignal:
		return "signal"
	case kindComputed:
		return "computed"
	case kindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// FlagsString renders the node's flag word as a short letter code
// (O=outdated T=tracking R=running N=notified E=hasError D=disposed),
// used by external devtools consumers rather than the core itself.
func (n *Node) FlagsString() string {
	var b []byte
	mark := func(set bool, c byte) {
		if set {
			b = append(b, c)
		}
	}
	mark(n.fl.has(flagOutdated), 'O')
	mark(n.fl.has(flagTracking), 'T')
	mark(n.fl.has(flagRunning), 'R')
	mark(n.fl.has(flagNotified), 'N')
	mark(n.fl.has(flagHasError), 'E')
	mark(n.fl.has(flagDisposed), 'D')
	if len(b) == 0 {
		return "-"
	}
	return string(b)
}
