package reactive

// Batch defers effect flushing, on the default graph, until fn
// returns, coalescing every write inside fn into a single propagation
// pass.
func Batch(fn func()) error { return defaultGraph.Batch(fn) }
