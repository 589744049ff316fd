package reactive

import "github.com/flowgraph/reactive/internal/engine"

// Graph is one independent reactive system. Most programs need only
// the process-wide graph returned by Default, but tests and multi-tenant
// hosts can create isolated ones.
type Graph struct {
	g *engine.Graph
}

func NewGraph() *Graph {
	return &Graph{g: engine.NewGraph()}
}

// SetHooks installs devtools observer callbacks on this graph.
func (g *Graph) SetHooks(h Hooks) { g.g.SetHooks(h) }

// Batch defers effect flushing until fn returns, coalescing every
// write inside fn into a single propagation pass.
func (g *Graph) Batch(fn func()) error { return g.g.Batch(fn) }

// Untracked runs fn without registering any signal or computed it
// reads as a dependency of the currently running computation.
func (g *Graph) Untracked(fn func()) { g.g.Untracked(fn) }

var defaultGraph = NewGraph()

// Default returns the process-wide graph the package-level Batch and
// Untracked helpers operate on. NewSignal, NewComputed and NewEffect
// always take an explicit *Graph; pass Default() to use this one.
func Default() *Graph { return defaultGraph }
