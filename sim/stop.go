package sim

import "iter"

// UntilTime yields pairs from seq while their time is at most maxTime and
// stops at the first pair beyond it. The pair that crossed the bound has
// already been computed by seq but is not yielded. Engine.AllUntil stops
// before firing that step.
func UntilTime[S any](seq iter.Seq2[float64, S], maxTime float64) iter.Seq2[float64, S] {
	return func(yield func(float64, S) bool) {
		for t, s := range seq {
			if t > maxTime || !yield(t, s) {
				return
			}
		}
	}
}

// FirstN yields at most n pairs from seq. n <= 0 yields nothing.
func FirstN[S any](seq iter.Seq2[float64, S], n int) iter.Seq2[float64, S] {
	return func(yield func(float64, S) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for t, s := range seq {
			if !yield(t, s) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}

// Collect drains seq into a slice so a run can be consumed more than once.
func Collect[S any](seq iter.Seq2[float64, S]) []Snapshot[S] {
	var out []Snapshot[S]
	for t, s := range seq {
		out = append(out, Snapshot[S]{Time: t, State: s})
	}
	return out
}

// AllUntil is All bounded by maxTime. It checks NextTime before every step and
// stops before firing an event scheduled after maxTime, so that event stays
// pending and never reaches the metrics or the recorder.
func (e *Engine[S]) AllUntil(maxTime float64) iter.Seq2[float64, S] {
	return func(yield func(float64, S) bool) {
		for {
			if next, ok := e.NextTime(); !ok || next > maxTime {
				return
			}
			snap, ok := e.Advance()
			if !ok || !yield(snap.Time, snap.State) {
				return
			}
		}
	}
}
