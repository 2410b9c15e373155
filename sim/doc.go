// Package sim provides the simulation engine for a single-channel queuing
// system with refusals (a loss system with one server and no buffer).
//
// # Reading Guide
//
//   - engine.go: Engine state, the pull-based Next step and Run
//   - metrics.go: Stats, derived ratios and the six-line summary
//   - rng.go: seedable, partitioned random streams (arrivals vs service)
//   - theory.go: exact steady-state reference values
//   - replicate.go: seeded independent replications with mean/stddev
//
// Decision tracing lives in sim/trace, which has no dependency on sim.
package sim
