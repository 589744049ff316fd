package reactive

import (
	"encoding/json"

	"github.com/flowgraph/reactive/internal/engine"
)

// Computed is a lazily-evaluated, memoized derived value. fn is given
// the value from its previous run (the zero value on the first run),
// mirroring the getter-with-oldValue shape of the runtime this package
// is built on.
type Computed[T any] struct {
	n *engine.Node
}

func NewComputed[T any](g *Graph, fn func(oldValue T) T, opts ...Option) *Computed[T] {
	o := buildOptions(opts)
	var last T
	body := func(*engine.Node) any {
		v := fn(last)
		last = v
		return v
	}
	return &Computed[T]{n: g.g.NewComputed(body, o.equal, o.label, o.autoDispose)}
}

// Read and Peek assert to T through an any value that can still be nil
// for a computed disposed before it ever ran; fall back to T's zero
// value rather than panicking on that type assertion.
func (c *Computed[T]) Read() T { return assertOrZero[T](c.n.Read()) }
func (c *Computed[T]) Peek() T { return assertOrZero[T](c.n.Peek()) }

func assertOrZero[T any](v any) T {
	var zero T
	if v == nil {
		return zero
	}
	t, _ := v.(T)
	return t
}

// Recompute forces an immediate recompute, bypassing the fast paths
// that would otherwise skip a run when nothing looks changed.
func (c *Computed[T]) Recompute() { c.n.Recompute() }

// OverrideWith brings this computed up to date (which runs its compute
// function if it is outdated or has never run), then forces it to v as
// if v had been produced by its latest refresh.
func (c *Computed[T]) OverrideWith(v T, force bool) error { return c.n.OverrideWith(v, force) }

func (c *Computed[T]) PreviousValue() (T, bool) {
	var zero T
	if c.n.Version() <= 1 {
		return zero, false
	}
	if pv := c.n.PreviousValue(); pv != nil {
		return pv.(T), true
	}
	return zero, true
}

// InitialValue returns the value produced by this computed's first
// successful run, or the zero value if it has never successfully run.
func (c *Computed[T]) InitialValue() T { return assertOrZero[T](c.n.InitialValue()) }

func (c *Computed[T]) Version() uint64  { return c.n.Version() }
func (c *Computed[T]) Disposed() bool   { return c.n.Disposed() }
func (c *Computed[T]) GlobalID() uint64 { return c.n.GlobalID() }

func (c *Computed[T]) Subscribe(fn func(T)) func() {
	return c.n.Subscribe(func(v any) { fn(v.(T)) })
}

func (c *Computed[T]) OnDispose(fn func()) func() { return c.n.OnDispose(fn) }
func (c *Computed[T]) Dispose()                   { c.n.Dispose() }

func (c *Computed[T]) ToJSON() ([]byte, error) { return json.Marshal(c.Read()) }
