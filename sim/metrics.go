// Counters and derived statistics for a loss-system run:
// throughput, acceptance ratio and refusal probability.

package sim

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoEvents is returned by ratio statistics when the run produced no arrivals.
var ErrNoEvents = errors.New("no events generated")

// Stats aggregates the counters of a run for final reporting.
type Stats struct {
	Horizon   float64 // configured horizon, the throughput denominator
	Processed int64   // arrivals accepted into service
	Refused   int64   // arrivals that found the channel busy
}

// Total returns the number of arrivals seen.
func (s Stats) Total() int64 {
	return s.Processed + s.Refused
}

// Throughput returns accepted arrivals per unit of virtual time
// (the absolute bandwidth of the channel).
func (s Stats) Throughput() float64 {
	return float64(s.Processed) / s.Horizon
}

// AcceptanceRatio returns the share of arrivals taken into service.
func (s Stats) AcceptanceRatio() (float64, error) {
	if s.Total() == 0 {
		return 0, ErrNoEvents
	}
	return float64(s.Processed) / float64(s.Total()), nil
}

// RefusalProbability returns the share of arrivals refused.
func (s Stats) RefusalProbability() (float64, error) {
	if s.Total() == 0 {
		return 0, ErrNoEvents
	}
	return float64(s.Refused) / float64(s.Total()), nil
}

// Summary renders the six-line report. Fails with ErrNoEvents on a run
// without arrivals, since the ratio lines are undefined.
func (s Stats) Summary() (string, error) {
	accepted, err := s.AcceptanceRatio()
	if err != nil {
		return "", err
	}
	refused, err := s.RefusalProbability()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total: %d\n", s.Total())
	fmt.Fprintf(&b, "Processed: %d\n", s.Processed)
	fmt.Fprintf(&b, "Refused: %d\n", s.Refused)
	fmt.Fprintf(&b, "Proportion of processed requests: %s\n", formatReal(accepted))
	fmt.Fprintf(&b, "Probability of refuse: %s\n", formatReal(refused))
	fmt.Fprintf(&b, "Absolute bandwidth: %s", formatReal(s.Throughput()))
	return b.String(), nil
}

// Print writes the summary followed by a newline.
func (s Stats) Print(w io.Writer) error {
	summary, err := s.Summary()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, summary)
	return err
}

// formatReal prints the shortest round-trip representation in plain
// decimal notation, so large clocks never switch to an exponent.
func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
