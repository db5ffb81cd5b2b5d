package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickEngine(t *testing.T, period float64) *Engine[counter] {
	t.Helper()
	reg := NewRegistry[counter]().
		Timed("Tick", TimedFunc[counter](func(h *Handle[counter]) {
			h.State().N++
			h.Schedule(period, "Tick")
		}))
	eng, err := NewEngine(counter{}, []InitialEntry{{Time: period, Events: []string{"Tick"}}}, nil, reg)
	require.NoError(t, err)
	return eng
}

func TestUntilTime_StopsAtFirstSnapshotBeyondBound(t *testing.T) {
	// GIVEN ticks every 1.5
	eng := tickEngine(t, 1.5)

	// WHEN bounded at 4.5
	snaps := Collect(UntilTime(eng.All(), 4.5))

	// THEN snapshots at 0, 1.5, 3, 4.5 are kept and the one at 6 was pulled but dropped
	require.Len(t, snaps, 4)
	assert.Equal(t, 4.5, snaps[3].Time)
	assert.Equal(t, 4, eng.Metrics().Steps)
	assert.Equal(t, 6.0, eng.Clock())
}

func TestAllUntil_DoesNotFireBeyondBound(t *testing.T) {
	// GIVEN ticks every 1.5
	eng := tickEngine(t, 1.5)

	// WHEN bounded at 4.5
	snaps := Collect(eng.AllUntil(4.5))

	// THEN the tick at 6 stays pending and is not counted
	require.Len(t, snaps, 4)
	assert.Equal(t, 3, eng.Metrics().Steps)
	assert.Equal(t, 4.5, eng.Clock())
	next, ok := eng.NextTime()
	assert.True(t, ok)
	assert.Equal(t, 6.0, next)

	// AND a later bound resumes from there
	more := Collect(eng.AllUntil(6))
	require.Len(t, more, 1)
	assert.Equal(t, 6.0, more[0].Time)
}

func TestNextTime(t *testing.T) {
	// GIVEN an arrival at t=5 and an armed conditional that becomes enabled by it
	eng := newQueueEngine(t, 5, 3, 2)

	next, ok := eng.NextTime()
	assert.True(t, ok)
	assert.Equal(t, 0.0, next, "initial snapshot")
	mustAdvance(t, eng)

	next, _ = eng.NextTime()
	assert.Equal(t, 5.0, next, "arrival")
	mustAdvance(t, eng)

	// THEN the enabled conditional fires at the current clock
	next, _ = eng.NextTime()
	assert.Equal(t, 5.0, next, "move to service")
	assert.Equal(t, 1, eng.Metrics().Steps, "NextTime fires nothing")
}

func TestNextTime_Exhausted(t *testing.T) {
	eng, err := NewEngine(counter{}, nil, nil, NewRegistry[counter]())
	require.NoError(t, err)
	mustAdvance(t, eng)

	_, ok := eng.NextTime()
	assert.False(t, ok)
	_, ok = eng.Advance()
	assert.False(t, ok)
	_, ok = eng.NextTime()
	assert.False(t, ok)
}

func TestUntilTime_FiniteRunEndsWithEngine(t *testing.T) {
	eng, err := NewEngine(counter{}, nil, nil, NewRegistry[counter]())
	require.NoError(t, err)
	assert.Len(t, Collect(UntilTime(eng.All(), 100)), 1)
}

func TestFirstN(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{-3, 0},
		{1, 1},
		{25, 25},
	}
	for _, tt := range tests {
		eng := tickEngine(t, 1)
		got := Collect(FirstN(eng.All(), tt.n))
		if len(got) != tt.want {
			t.Errorf("FirstN(%d) yielded %d snapshots, want %d", tt.n, len(got), tt.want)
		}
		// FirstN must not pull past what it yields
		if tt.want > 0 && eng.Metrics().Steps != tt.want-1 {
			t.Errorf("FirstN(%d) fired %d events, want %d", tt.n, eng.Metrics().Steps, tt.want-1)
		}
	}
}

func TestCollect_CachesForRepeatedUse(t *testing.T) {
	eng := tickEngine(t, 2)
	snaps := Collect(FirstN(eng.All(), 3))

	var total float64
	for range 2 {
		for _, s := range snaps {
			total += s.Time
		}
	}
	assert.Equal(t, 12.0, total)
}
