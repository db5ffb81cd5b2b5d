package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSteps       int
	TimedSteps       int
	ConditionalSteps int
	UniqueEvents     int
	EventCounts      map[string]int // event name -> number of firings
	FirstTime        float64
	LastTime         float64
	// LongestHold is the largest number of consecutive steps sharing one time.
	LongestHold int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		EventCounts: make(map[string]int),
	}
	if st == nil || len(st.Steps) == 0 {
		return summary
	}

	summary.TotalSteps = len(st.Steps)
	summary.FirstTime = st.Steps[0].Time
	summary.LastTime = st.Steps[len(st.Steps)-1].Time

	hold := 0
	for i, s := range st.Steps {
		summary.EventCounts[s.Event]++
		switch s.Kind {
		case "timed":
			summary.TimedSteps++
		case "conditional":
			summary.ConditionalSteps++
		}
		if i > 0 && s.Time == st.Steps[i-1].Time {
			hold++
		} else {
			hold = 1
		}
		summary.LongestHold = max(summary.LongestHold, hold)
	}
	summary.UniqueEvents = len(summary.EventCounts)

	return summary
}
