package reactive

import (
	"encoding/json"

	"github.com/flowgraph/reactive/internal/engine"
)

// Signal is a mutable reactive value of type T: the leaf node of a
// dependency graph.
type Signal[T any] struct {
	n *engine.Node
}

// NewSignal creates a signal on g holding initial.
func NewSignal[T any](g *Graph, initial T, opts ...Option) *Signal[T] {
	o := buildOptions(opts)
	return &Signal[T]{n: g.g.NewSignal(initial, o.equal, o.label, o.autoDispose)}
}

// Read returns the current value, registering a dependency if called
// during a computed's or effect's run.
func (s *Signal[T]) Read() T { return s.n.Read().(T) }

// Peek returns the current value without registering a dependency.
func (s *Signal[T]) Peek() T { return s.n.Peek().(T) }

// Write sets a new value, notifying dependents if it actually changed.
func (s *Signal[T]) Write(v T) error { return s.n.Write(v, false) }

// Set is Write with an escape hatch: force bypasses the equality check
// and always notifies, even if v equals the current value.
func (s *Signal[T]) Set(v T, force bool) error { return s.n.Write(v, force) }

// PreviousValue returns the value held before the last write, and
// whether there was one.
func (s *Signal[T]) PreviousValue() (T, bool) {
	var zero T
	if s.n.Version() <= 1 {
		return zero, false
	}
	if pv := s.n.PreviousValue(); pv != nil {
		return pv.(T), true
	}
	return zero, true
}

func (s *Signal[T]) InitialValue() T  { return s.n.InitialValue().(T) }
func (s *Signal[T]) Version() uint64  { return s.n.Version() }
func (s *Signal[T]) Disposed() bool   { return s.n.Disposed() }
func (s *Signal[T]) GlobalID() uint64 { return s.n.GlobalID() }

// Subscribe runs fn once now and again every time the value changes.
// The returned func stops it.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	return s.n.Subscribe(func(v any) { fn(v.(T)) })
}

func (s *Signal[T]) OnDispose(fn func()) func() { return s.n.OnDispose(fn) }
func (s *Signal[T]) Dispose()                   { s.n.Dispose() }

func (s *Signal[T]) ToJSON() ([]byte, error) { return json.Marshal(s.Read()) }
