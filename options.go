package reactive

import "github.com/flowgraph/reactive/internal/engine"

// Option configures a Signal, Computed or Effect at construction time.
type Option func(*nodeOptions)

type nodeOptions struct {
	equal       engine.EqualFunc
	label       string
	autoDispose bool
}

// WithEqual overrides the default == comparison used to decide whether
// a write or a recompute actually changed the value.
func WithEqual[T any](eq func(a, b T) bool) Option {
	return func(o *nodeOptions) {
		o.equal = func(a, b any) bool { return eq(a.(T), b.(T)) }
	}
}

// WithLabel attaches a debug label, surfaced by devtools hooks and by
// error messages (cycle detection, compute failures).
func WithLabel(label string) Option {
	return func(o *nodeOptions) { o.label = label }
}

// WithAutoDispose disposes the node automatically once its last
// subscriber goes away.
func WithAutoDispose() Option {
	return func(o *nodeOptions) { o.autoDispose = true }
}

func buildOptions(opts []Option) nodeOptions {
	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
