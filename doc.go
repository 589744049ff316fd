// Package reactive implements a fine-grained reactive value-propagation
// graph: mutable Signals, memoized Computeds derived from them, and
// Effects that run for their side effects. Writing a signal notifies
// exactly the computeds and effects that could possibly be affected,
// and a computed recomputes at most once per write batch no matter how
// many of its dependencies changed.
package reactive
