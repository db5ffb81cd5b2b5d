package sim

import (
	"bytes"
	"strings"
	"testing"
)

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics()
	m.record(FiredEvent{Name: "A", Kind: KindTimed, Time: 1})
	m.record(FiredEvent{Name: "B", Kind: KindConditional, Time: 1})
	m.record(FiredEvent{Name: "A", Kind: KindTimed, Time: 4})

	if m.Steps != 3 || m.TimedFired != 2 || m.ConditionalFired != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", m.Steps, m.TimedFired, m.ConditionalFired)
	}
	if m.FiredByEvent["A"] != 2 || m.FiredByEvent["B"] != 1 {
		t.Errorf("FiredByEvent = %v", m.FiredByEvent)
	}
	if m.SimEndedTime != 4 {
		t.Errorf("SimEndedTime = %v, want 4", m.SimEndedTime)
	}
}

func TestMetrics_Print_SortsEvents(t *testing.T) {
	m := NewMetrics()
	m.record(FiredEvent{Name: "Zeta", Kind: KindTimed, Time: 1})
	m.record(FiredEvent{Name: "Alpha", Kind: KindTimed, Time: 2})

	var buf bytes.Buffer
	m.Print(&buf)
	out := buf.String()

	if !strings.Contains(out, "Steps                : 2") {
		t.Errorf("missing step count:\n%s", out)
	}
	if strings.Index(out, "Alpha") > strings.Index(out, "Zeta") {
		t.Errorf("events not sorted by name:\n%s", out)
	}
}
