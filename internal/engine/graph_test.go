package engine_test

import (
	"testing"

	"github.com/flowgraph/reactive/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalReadWrite(t *testing.T) {
	g := engine.NewGraph()
	s := g.NewSignal(1, nil, "s", false)

	assert.Equal(t, 1, s.Read())
	require.NoError(t, s.Write(2, false))
	assert.Equal(t, 2, s.Read())
}

func TestWriteSameValueDoesNotBumpVersion(t *testing.T) {
	g := engine.NewGraph()
	s := g.NewSignal(1, nil, "s", false)
	before := s.Version()
	require.NoError(t, s.Write(1, false))
	assert.Equal(t, before, s.Version())
}

func TestWriteForceAlwaysBumpsVersion(t *testing.T) {
	g := engine.NewGraph()
	s := g.NewSignal(1, nil, "s", false)
	before := s.Version()
	require.NoError(t, s.Write(1, true))
	assert.Greater(t, s.Version(), before)
}

func TestComputedRecomputesOnlyWhenSourceChanges(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(2, nil, "a", false)

	calls := 0
	b := g.NewComputed(func(*engine.Node) any {
		calls++
		return a.Read().(int) * 2
	}, nil, "b", false)

	assert.Equal(t, 4, b.Read())
	assert.Equal(t, 1, calls)

	// reading again without a write in between must not recompute
	b.Read()
	assert.Equal(t, 1, calls)

	require.NoError(t, a.Write(3, false))
	assert.Equal(t, 6, b.Read())
	assert.Equal(t, 2, calls)
}

// diamond: A feeds both B and C, D reads B and C. D must only recompute
// once per write to A, not twice.
func TestDiamondRecomputesOnce(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal("a", nil, "a", false)
	b := g.NewComputed(func(*engine.Node) any { return a.Read() }, nil, "b", false)
	c := g.NewComputed(func(*engine.Node) any { return a.Read() }, nil, "c", false)

	dCalls := 0
	d := g.NewComputed(func(*engine.Node) any {
		dCalls++
		return b.Read().(string) + " " + c.Read().(string)
	}, nil, "d", false)

	assert.Equal(t, "a a", d.Read())
	assert.Equal(t, 1, dCalls)

	require.NoError(t, a.Write("aa", false))
	assert.Equal(t, "aa aa", d.Read())
	assert.Equal(t, 2, dCalls)
}

func TestDynamicDependenciesDropUnreadBranch(t *testing.T) {
	g := engine.NewGraph()
	cond := g.NewSignal(true, nil, "cond", false)
	x := g.NewSignal(1, nil, "x", false)
	y := g.NewSignal(100, nil, "y", false)

	calls := 0
	d := g.NewComputed(func(*engine.Node) any {
		calls++
		if cond.Read().(bool) {
			return x.Read()
		}
		return y.Read()
	}, nil, "d", false)

	assert.Equal(t, 1, d.Read())
	require.NoError(t, cond.Write(false, false))
	assert.Equal(t, 100, d.Read())
	assert.Equal(t, 2, calls)

	// x is no longer a dependency: writing it must not trigger a recompute
	require.NoError(t, x.Write(999, false))
	d.Read()
	assert.Equal(t, 2, calls)
}

func TestEqualitySuppressesDownstreamRecompute(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(4, nil, "a", false)
	b := g.NewComputed(func(*engine.Node) any { return a.Read().(int) % 2 }, nil, "b", false)

	cCalls := 0
	c := g.NewComputed(func(*engine.Node) any {
		cCalls++
		return b.Read()
	}, nil, "c", false)

	assert.Equal(t, 0, c.Read())
	assert.Equal(t, 1, cCalls)

	// 4 -> 6 keeps b at 0, so c must not recompute
	require.NoError(t, a.Write(6, false))
	c.Read()
	assert.Equal(t, 1, cCalls)

	require.NoError(t, a.Write(7, false))
	assert.Equal(t, 1, c.Read())
	assert.Equal(t, 2, cCalls)
}

func TestCycleDetected(t *testing.T) {
	g := engine.NewGraph()
	var a *engine.Node
	a = g.NewComputed(func(*engine.Node) any {
		return a.Read().(int) + 1
	}, nil, "a", false)

	assert.Panics(t, func() { a.Read() })
}

func TestAutoDisposeOnLastTargetRemoved(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", true)

	eff, err := g.NewEffect(func(*engine.Node) any {
		a.Read()
		return nil
	}, "eff")
	require.NoError(t, err)

	assert.False(t, a.Disposed())
	eff.Dispose()
	assert.True(t, a.Disposed())
}

func TestWriteAfterDispose(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", false)
	a.Dispose()

	err := a.Write(2, false)
	require.Error(t, err)
	var wad *engine.WriteAfterDisposeError
	assert.ErrorAs(t, err, &wad)
}

func TestBatchCoalescesEffectRuns(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", false)
	b := g.NewSignal(2, nil, "b", false)

	runs := 0
	_, err := g.NewEffect(func(*engine.Node) any {
		runs++
		a.Read()
		b.Read()
		return nil
	}, "eff")
	require.NoError(t, err)
	assert.Equal(t, 1, runs)

	err = g.Batch(func() {
		_ = a.Write(10, false)
		_ = b.Write(20, false)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, runs)
}

func TestUntrackedReadRegistersNoDependency(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", false)
	b := g.NewSignal(2, nil, "b", false)

	calls := 0
	c := g.NewComputed(func(*engine.Node) any {
		calls++
		var bv any
		g.Untracked(func() { bv = b.Read() })
		return a.Read().(int) + bv.(int)
	}, nil, "c", false)

	assert.Equal(t, 3, c.Read())
	assert.Equal(t, 1, calls)

	require.NoError(t, b.Write(99, false))
	c.Read()
	assert.Equal(t, 1, calls)
}

func TestEffectReentryLimitRaised(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(0, nil, "a", false)

	var writeErr error
	_, err := g.NewEffect(func(*engine.Node) any {
		v := a.Read().(int)
		writeErr = a.Write(v+1, false)
		return nil
	}, "eff")
	require.NoError(t, err)

	require.Error(t, writeErr)
	var reentry *engine.EffectReentryError
	assert.ErrorAs(t, writeErr, &reentry)
}

func TestComputedReadAfterDisposeReturnsCachedValueWithoutRecompute(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", false)

	calls := 0
	b := g.NewComputed(func(*engine.Node) any {
		calls++
		return a.Read()
	}, nil, "b", false)

	assert.Equal(t, 1, b.Read())
	assert.Equal(t, 1, calls)

	b.Dispose()
	assert.Equal(t, 1, b.Read())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, b.Peek())
	assert.Equal(t, 1, calls)

	require.NoError(t, a.Write(99, false))
	b.Read()
	assert.Equal(t, 1, calls)
}

func TestComputedDisposedBeforeFirstReadNeverComputes(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", false)

	calls := 0
	b := g.NewComputed(func(*engine.Node) any {
		calls++
		return a.Read()
	}, nil, "b", false)

	b.Dispose()

	assert.Nil(t, b.Read())
	assert.Equal(t, 0, calls)
}

func TestRecomputeForcesCompute(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", false)

	calls := 0
	b := g.NewComputed(func(*engine.Node) any {
		calls++
		return a.Read()
	}, nil, "b", false)

	b.Read()
	assert.Equal(t, 1, calls)

	b.Recompute()
	assert.Equal(t, 2, calls)
}

func TestComputedInitialValue(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", false)
	b := g.NewComputed(func(*engine.Node) any {
		return a.Read().(int) * 10
	}, nil, "b", false)

	assert.Nil(t, b.InitialValue())

	assert.Equal(t, 10, b.Read())
	assert.Equal(t, 10, b.InitialValue())

	require.NoError(t, a.Write(2, false))
	assert.Equal(t, 20, b.Read())
	assert.Equal(t, 10, b.InitialValue())
}

func TestOverrideWithSetsPreviousValue(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", false)
	b := g.NewComputed(func(*engine.Node) any {
		return a.Read().(int) * 10
	}, nil, "b", false)

	assert.Equal(t, 10, b.Read())

	require.NoError(t, b.OverrideWith(42, false))
	assert.Equal(t, 42, b.Read())
	assert.Equal(t, 42, b.PreviousValue())
}

func TestOverrideWithNilFallsBackToInitialValue(t *testing.T) {
	g := engine.NewGraph()
	a := g.NewSignal(1, nil, "a", false)
	b := g.NewComputed(func(*engine.Node) any {
		return a.Read().(int) * 10
	}, nil, "b", false)

	require.NoError(t, b.OverrideWith(99, false))
	assert.Equal(t, 99, b.Read())

	require.NoError(t, b.OverrideWith(nil, true))
	assert.Equal(t, 10, b.Read())
	assert.Equal(t, 10, b.PreviousValue())
}
