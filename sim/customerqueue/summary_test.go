package customerqueue

import (
	"bytes"
	"strings"
	"testing"

	"github.com/inference-sim/eventsim/sim"
	"github.com/inference-sim/eventsim/sim/internal/testutil"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 10)
	if s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestSummarize_TimeWeighted(t *testing.T) {
	// GIVEN queue 0 on [0,2), queue 2 with busy operator on [2,6), queue 1 on [6,10]
	snaps := []sim.Snapshot[State]{
		{Time: 0, State: State{QueueLength: 0, OperatorAvailable: true}},
		{Time: 2, State: State{QueueLength: 2, OperatorAvailable: false, Arrivals: 3}},
		{Time: 6, State: State{QueueLength: 1, OperatorAvailable: true, Arrivals: 3, Served: 2}},
	}

	// WHEN summarized up to t=10
	s := Summarize(snaps, 10)

	// THEN area = 0*2 + 2*4 + 1*4 = 12 over 10; busy 4 of 10
	testutil.AssertFloat64Equal(t, "MeanQueueLength", 1.2, s.MeanQueueLength, 1e-12)
	testutil.AssertFloat64Equal(t, "Utilization", 0.4, s.Utilization, 1e-12)
	if s.MaxQueueLength != 2 {
		t.Errorf("MaxQueueLength = %d, want 2", s.MaxQueueLength)
	}
	if s.Duration != 10 || s.Arrivals != 3 || s.Served != 2 {
		t.Errorf("got %+v", s)
	}
}

func TestSummarize_EndTimeBeforeLastSnapshot(t *testing.T) {
	snaps := []sim.Snapshot[State]{
		{Time: 0, State: State{QueueLength: 1}},
		{Time: 4, State: State{QueueLength: 3}},
	}
	s := Summarize(snaps, 1)
	if s.Duration != 4 {
		t.Errorf("Duration = %v, want 4", s.Duration)
	}
	if s.MeanQueueLength != 1 {
		t.Errorf("MeanQueueLength = %v, want 1", s.MeanQueueLength)
	}
}

func TestSummary_Print(t *testing.T) {
	var buf bytes.Buffer
	Summary{Duration: 10, Arrivals: 4, Served: 3, Utilization: 0.5}.Print(&buf)
	out := buf.String()
	for _, want := range []string{"Arrivals             : 4", "Served               : 3", "50.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
