package customerqueue

import (
	"fmt"
	"io"

	"github.com/inference-sim/eventsim/sim"
)

// Summary describes a run of the customer queue.
type Summary struct {
	Duration        float64 // observed simulated time
	MeanQueueLength float64 // time-weighted
	MaxQueueLength  int
	Utilization     float64 // fraction of time the operator was busy
	Arrivals        int
	Served          int
}

// Summarize computes time-weighted statistics over snaps, treating each state
// as holding until the next snapshot and the last one until endTime.
// If endTime lies before the last snapshot, the last snapshot's time is used.
func Summarize(snaps []sim.Snapshot[State], endTime float64) Summary {
	var sum Summary
	if len(snaps) == 0 {
		return sum
	}
	last := snaps[len(snaps)-1]
	endTime = max(endTime, last.Time)
	start := snaps[0].Time

	var queueArea, busyTime float64
	for i, snap := range snaps {
		until := endTime
		if i+1 < len(snaps) {
			until = snaps[i+1].Time
		}
		dt := until - snap.Time
		queueArea += float64(snap.State.QueueLength) * dt
		if !snap.State.OperatorAvailable {
			busyTime += dt
		}
		sum.MaxQueueLength = max(sum.MaxQueueLength, snap.State.QueueLength)
	}

	sum.Duration = endTime - start
	if sum.Duration > 0 {
		sum.MeanQueueLength = queueArea / sum.Duration
		sum.Utilization = busyTime / sum.Duration
	}
	sum.Arrivals = last.State.Arrivals
	sum.Served = last.State.Served
	return sum
}

// Print writes the summary in the same layout as sim.Metrics.Print.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Customer Queue ===")
	fmt.Fprintf(w, "Duration             : %.4f\n", s.Duration)
	fmt.Fprintf(w, "Arrivals             : %d\n", s.Arrivals)
	fmt.Fprintf(w, "Served               : %d\n", s.Served)
	fmt.Fprintf(w, "Mean Queue Length    : %.4f\n", s.MeanQueueLength)
	fmt.Fprintf(w, "Max Queue Length     : %d\n", s.MaxQueueLength)
	fmt.Fprintf(w, "Operator Utilization : %.2f%%\n", s.Utilization*100)
}
