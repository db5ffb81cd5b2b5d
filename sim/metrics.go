// Tracks kernel-level counters: how many events fired, of which kind, and when the run ended.

package sim

import (
	"fmt"
	"io"
	"slices"
)

// Metrics aggregates statistics about the simulation
// for final reporting.
type Metrics struct {
	Steps            int            // Number of fired events
	TimedFired       int            // Fired timed events
	ConditionalFired int            // Fired conditional events
	FiredByEvent     map[string]int // event name -> number of firings (both kinds)
	SimEndedTime     float64        // Clock after the last fired event
	Exhausted        bool           // Whether both event lists ran empty
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{FiredByEvent: make(map[string]int)}
}

func (m *Metrics) record(ev FiredEvent) {
	m.Steps++
	switch ev.Kind {
	case KindTimed:
		m.TimedFired++
	case KindConditional:
		m.ConditionalFired++
	}
	m.FiredByEvent[ev.Name]++
	m.SimEndedTime = ev.Time
}

// Print writes the aggregated metrics, events sorted by name.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Steps                : %d\n", m.Steps)
	fmt.Fprintf(w, "Timed Events         : %d\n", m.TimedFired)
	fmt.Fprintf(w, "Conditional Events   : %d\n", m.ConditionalFired)
	fmt.Fprintf(w, "Simulation Ended At  : %.4f\n", m.SimEndedTime)
	fmt.Fprintf(w, "Exhausted            : %t\n", m.Exhausted)

	names := make([]string, 0, len(m.FiredByEvent))
	for name := range m.FiredByEvent {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-24s : %d\n", name, m.FiredByEvent[name])
	}
}
