package engine

func newComputedNode(g *graph, compute func(*node) any, eq EqualFunc, label string, autoDispose bool) *node {
	n := newNode(g, kindComputed)
	n.compute = compute
	n.label = label
	n.autoDispose = autoDispose
	n.fl |= flagOutdated
	if eq != nil {
		n.equal = eq
	}
	g.hooks.fireNodeCreated(n)
	return n
}

// computedRead refreshes the computed if needed, re-raises its cached
// error if the last refresh failed, and otherwise returns its value,
// recording a dependency on whoever is currently being evaluated. A
// disposed computed never refreshes; it just returns its last value.
func (n *node) computedRead() any {
	if n.fl.has(flagDisposed) {
		n.graph.hooks.fireReadAfterDispose(n)
		return n.value
	}

	n.refresh()

	if n.fl.has(flagHasError) {
		panic(n.err)
	}

	n.graph.track(n)
	return n.value
}

func (n *node) refresh() { n.refreshInternal(false) }

// recompute forces an immediate recompute even if nothing this
// computed depends on has actually changed: refresh its sources first,
// then force-invoke regardless of what that walk found.
func (n *node) recompute() {
	n.refreshInternal(true)
	if n.fl.has(flagHasError) {
		panic(n.err)
	}
}

func (n *node) refreshInternal(force bool) {
	n.fl &^= flagNotified

	if n.fl.has(flagRunning) {
		panic(&CycleError{Label: n.label})
	}

	if !force {
		if n.fl.has(flagTracking) && !n.fl.has(flagOutdated) {
			return
		}
		if n.initialized && n.globalVersionAtRefresh == n.graph.globalVersion {
			n.fl &^= flagOutdated
			return
		}
	}

	n.fl |= flagRunning

	needsRecompute := force || !n.initialized
	for e := n.sourcesHead; e != nil; e = e.nextInSources {
		if e.source.kind == kindComputed {
			e.source.refresh()
		}
		if e.recordedVersion != e.source.version {
			needsRecompute = true
		}
	}

	if !needsRecompute {
		n.fl &^= (flagOutdated | flagRunning)
		n.globalVersionAtRefresh = n.graph.globalVersion
		return
	}

	prevHasError := n.fl.has(flagHasError)
	n.prepareSources()
	value, err := n.invokeCompute()
	n.cleanupSources()

	n.fl &^= (flagOutdated | flagRunning)
	n.globalVersionAtRefresh = n.graph.globalVersion

	if err != nil {
		n.fl |= flagHasError
		n.err = &ComputeError{Label: n.label, Err: err}
		n.version++
		return
	}

	n.fl &^= flagHasError
	n.err = nil

	changed := !n.initialized || prevHasError || !equalValues(n.equal, n.value, value)
	first := !n.initialized
	n.previousValue = n.value
	n.value = value
	n.initialized = true
	if first {
		n.initialValue = value
	}

	if changed {
		n.version++
		n.graph.hooks.fireComputedUpdated(n, value)
	}
}

// invokeCompute runs the compute function with this node installed as
// the graph's current evaluator, converting a panic into an error
// instead of letting it unwind past refresh.
func (n *node) invokeCompute() (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = normalizeError(r)
		}
	}()

	g := n.graph
	prev := g.current
	g.current = n
	defer func() { g.current = prev }()

	return n.compute(n), nil
}

// overrideWith refreshes this computed first (which invokes compute if
// it is outdated or has never run), then forces it to a specific value
// as if that value had been produced by its latest refresh, and
// notifies dependents exactly like a signal write.
func (n *node) overrideWith(v any, force bool) error {
	n.refresh()

	if v == nil {
		v = n.initialValue
	}

	if !force && n.initialized && equalValues(n.equal, n.value, v) {
		return nil
	}

	n.value = v
	n.previousValue = v
	n.initialized = true
	n.version++
	n.fl &^= (flagOutdated | flagHasError)
	n.err = nil
	n.graph.globalVersion++
	n.globalVersionAtRefresh = n.graph.globalVersion

	n.graph.hooks.fireComputedUpdated(n, v)

	for e := n.targetsHead; e != nil; e = e.nextInTargets {
		e.target.notify()
	}

	return n.graph.maybeFlush()
}
