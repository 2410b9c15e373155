// Package trace provides per-arrival decision recording for loss-system runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// ArrivalRecord captures a single accept/refuse decision.
type ArrivalRecord struct {
	Seq           int64   `yaml:"seq"`             // 1-based arrival number
	Clock         float64 `yaml:"clock"`           // virtual time of arrival
	Accepted      bool    `yaml:"accepted"`        // false when the channel was busy
	ChannelFreeAt float64 `yaml:"channel_free_at"` // channel release time after the decision
}
