package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/lossq/lossq/sim/trace"
)

// EventKind distinguishes the two outcomes of an arrival.
type EventKind int

const (
	// EventAccepted means the arrival found the channel free and took it.
	EventAccepted EventKind = iota
	// EventRefused means the channel was busy and the arrival left unserved.
	EventRefused
)

// Event describes a single arrival on the virtual timeline.
type Event struct {
	Kind EventKind
	Time float64 // elapsed virtual time at the moment of arrival
}

// Accepted reports whether the arrival was taken into service.
func (e Event) Accepted() bool {
	return e.Kind == EventAccepted
}

// String renders the per-event report line.
func (e Event) String() string {
	if e.Accepted() {
		return fmt.Sprintf("request added to queue at %s", formatReal(e.Time))
	}
	return fmt.Sprintf("requests refused at %s", formatReal(e.Time))
}

// Engine simulates a single service channel with no buffer.
// Arrival gaps are uniform on [0,1); service durations are exponential
// with rate Config.ServiceRate. Arrivals that find the channel busy are refused.
//
// Thread-safety: NOT thread-safe.
type Engine struct {
	cfg Config

	arrivals *rand.Rand
	service  *rand.Rand

	elapsed       float64
	channelFreeAt float64
	processed     int64
	refused       int64

	trace *trace.SimulationTrace // nil when tracing is off
}

// NewEngine validates cfg and binds the arrival and service streams of rng.
func NewEngine(cfg Config, rng *PartitionedRNG) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source must not be nil", ErrInvalidConfig)
	}
	return &Engine{
		cfg:      cfg,
		arrivals: rng.ForSubsystem(SubsystemArrivals),
		service:  rng.ForSubsystem(SubsystemService),
	}, nil
}

// SetTrace attaches a decision trace. Passing nil detaches it.
func (e *Engine) SetTrace(st *trace.SimulationTrace) {
	e.trace = st
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Reset returns the engine to its initial state: clock at zero, channel
// free, counters cleared. The random streams keep advancing, so a reset
// engine starts a new independent run rather than replaying the previous one.
// An attached trace is emptied so it only ever holds the current run.
func (e *Engine) Reset() {
	e.elapsed = 0
	e.channelFreeAt = 0
	e.processed = 0
	e.refused = 0
	if e.trace != nil {
		e.trace.Reset()
	}
}

// Next produces the next arrival. It returns false once the clock has
// passed the horizon, and keeps returning false until Reset.
//
// The horizon check runs before drawing the next gap, so the arrival that
// carries the clock past the horizon is still evaluated and counted.
func (e *Engine) Next() (Event, bool) {
	if e.elapsed > e.cfg.Horizon {
		return Event{}, false
	}

	e.elapsed += e.arrivals.Float64()

	var ev Event
	if e.elapsed >= e.channelFreeAt {
		e.processed++
		e.channelFreeAt = e.elapsed + e.service.ExpFloat64()/e.cfg.ServiceRate
		ev = Event{Kind: EventAccepted, Time: e.elapsed}
		logrus.Debugf("<< accepted at %v, channel busy until %v", e.elapsed, e.channelFreeAt)
	} else {
		e.refused++
		ev = Event{Kind: EventRefused, Time: e.elapsed}
		logrus.Debugf("<< refused at %v, channel busy until %v", e.elapsed, e.channelFreeAt)
	}

	if e.trace != nil && e.trace.Config.Level == trace.TraceLevelDecisions {
		e.trace.RecordArrival(trace.ArrivalRecord{
			Seq:           e.processed + e.refused,
			Clock:         ev.Time,
			Accepted:      ev.Accepted(),
			ChannelFreeAt: e.channelFreeAt,
		})
	}
	return ev, true
}

// Run drains the event sequence, passing every event to emit (which may be
// nil), and returns the final statistics. ctx is checked between events.
func (e *Engine) Run(ctx context.Context, emit func(Event)) (Stats, error) {
	for {
		if err := ctx.Err(); err != nil {
			return e.Stats(), err
		}
		ev, ok := e.Next()
		if !ok {
			break
		}
		if emit != nil {
			emit(ev)
		}
	}
	logrus.Debugf("Simulation ended at %v after %d arrivals", e.elapsed, e.processed+e.refused)
	return e.Stats(), nil
}

// Elapsed returns the current virtual clock.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// ChannelFreeAt returns the virtual time at which the channel becomes free.
func (e *Engine) ChannelFreeAt() float64 { return e.channelFreeAt }

// Processed returns the number of accepted arrivals so far.
func (e *Engine) Processed() int64 { return e.processed }

// Refused returns the number of refused arrivals so far.
func (e *Engine) Refused() int64 { return e.refused }

// Stats snapshots the counters. Valid at any point of the run.
func (e *Engine) Stats() Stats {
	return Stats{
		Horizon:   e.cfg.Horizon,
		Processed: e.processed,
		Refused:   e.refused,
	}
}
