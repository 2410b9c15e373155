package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions int     `yaml:"total_decisions"`
	AcceptedCount  int     `yaml:"accepted"`
	RefusedCount   int     `yaml:"refused"`
	MeanGap        float64 `yaml:"mean_gap"` // mean virtual time between consecutive arrivals
	MaxGap         float64 `yaml:"max_gap"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Arrivals)
	prev := 0.0
	for _, a := range st.Arrivals {
		if a.Accepted {
			summary.AcceptedCount++
		} else {
			summary.RefusedCount++
		}
		if gap := a.Clock - prev; gap > summary.MaxGap {
			summary.MaxGap = gap
		}
		prev = a.Clock
	}

	if summary.TotalDecisions > 0 {
		// the clock starts at zero, so the last arrival time spans every gap
		summary.MeanGap = prev / float64(summary.TotalDecisions)
	}
	return summary
}
