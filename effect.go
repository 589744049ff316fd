package reactive

import "github.com/flowgraph/reactive/internal/engine"

// Effect eagerly runs fn once at creation and again whenever any
// signal or computed it read during its last run subsequently changes.
// fn may return a cleanup func, run before the next run and on
// dispose; a nil return means no cleanup.
type Effect struct {
	n *engine.Node
}

func NewEffect(g *Graph, fn func() func(), opts ...Option) (*Effect, error) {
	o := buildOptions(opts)
	body := func(*engine.Node) any {
		return fn()
	}
	n, err := g.g.NewEffect(body, o.label)
	return &Effect{n: n}, err
}

func (e *Effect) GlobalID() uint64 { return e.n.GlobalID() }
func (e *Effect) Disposed() bool   { return e.n.Disposed() }

func (e *Effect) OnDispose(fn func()) func() { return e.n.OnDispose(fn) }
func (e *Effect) Dispose()                   { e.n.Dispose() }
