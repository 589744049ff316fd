package reactive

// Untracked runs fn, on the default graph, without registering any
// signal or computed it reads as a dependency of whatever computation
// is currently running.
func Untracked(fn func()) { defaultGraph.Untracked(fn) }
