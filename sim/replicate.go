package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Estimate is the sample mean and standard deviation of a statistic across replications.
type Estimate struct {
	Mean   float64
	StdDev float64 // NaN with fewer than two samples
}

// ReplicationSummary aggregates independent runs of the same Config.
type ReplicationSummary struct {
	Config       Config
	Seed         int64 // seed of the first replication; run i uses Seed+i
	Replications int

	AcceptanceRatio    Estimate
	RefusalProbability Estimate
	Throughput         Estimate
}

// Replicate runs n independent engines seeded seed, seed+1, ... and
// aggregates their statistics. Runs are sequential so results depend only
// on (cfg, seed, n).
func Replicate(ctx context.Context, cfg Config, seed int64, n int) (*ReplicationSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: replications must be > 0, got %d", ErrInvalidConfig, n)
	}

	summary := &ReplicationSummary{Config: cfg, Seed: seed, Replications: n}
	accepted := make([]float64, 0, n)
	refused := make([]float64, 0, n)
	throughput := make([]float64, 0, n)

	for i := 0; i < n; i++ {
		engine, err := NewEngine(cfg, NewPartitionedRNG(NewSimulationKey(seed+int64(i))))
		if err != nil {
			return nil, err
		}
		st, err := engine.Run(ctx, nil)
		if err != nil {
			return nil, err
		}
		// a valid horizon always yields at least one arrival, so the ratios are defined
		a, err := st.AcceptanceRatio()
		if err != nil {
			return nil, fmt.Errorf("replication %d (seed %d): %w", i, seed+int64(i), err)
		}
		r, err := st.RefusalProbability()
		if err != nil {
			return nil, fmt.Errorf("replication %d (seed %d): %w", i, seed+int64(i), err)
		}
		logrus.Debugf("replication %d (seed %d): %d arrivals", i, seed+int64(i), st.Total())
		throughput = append(throughput, st.Throughput())
		accepted = append(accepted, a)
		refused = append(refused, r)
	}

	summary.AcceptanceRatio = estimate(accepted)
	summary.RefusalProbability = estimate(refused)
	summary.Throughput = estimate(throughput)
	return summary, nil
}

func estimate(xs []float64) Estimate {
	if len(xs) == 0 {
		return Estimate{Mean: 0, StdDev: 0}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Estimate{Mean: mean, StdDev: std}
}
