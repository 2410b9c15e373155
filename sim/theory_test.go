package sim

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheory_ClosedForm(t *testing.T) {
	ref := Theory(Config{Horizon: 70, ServiceRate: 0.5})

	want := (1 - math.Exp(-0.5)) / 0.5
	assert.InDelta(t, want, ref.RefusalProbability, 1e-12)
	assert.InDelta(t, 1-want, ref.AcceptanceRatio, 1e-12)
	assert.Equal(t, 2.0, ref.ArrivalRate)
	assert.InDelta(t, 2*(1-want), ref.Throughput, 1e-12)
}

func TestTheory_Limits(t *testing.T) {
	// fast service: almost nothing refused
	assert.Less(t, Theory(Config{Horizon: 70, ServiceRate: 1000}).RefusalProbability, 0.01)
	// slow service: almost everything refused
	assert.Greater(t, Theory(Config{Horizon: 70, ServiceRate: 0.001}).RefusalProbability, 0.99)
	// vanishing rate takes the series branch without dividing by ~0
	assert.InDelta(t, 1.0, Theory(Config{Horizon: 70, ServiceRate: 1e-12}).RefusalProbability, 1e-9)
}

func TestTheory_MatchesLongRun(t *testing.T) {
	// GIVEN long horizons (~200k arrivals)
	for _, mu := range []float64{0.5, 2, 8} {
		cfg := Config{Horizon: 100000, ServiceRate: mu}
		e, err := NewEngine(cfg, NewPartitionedRNG(NewSimulationKey(42)))
		require.NoError(t, err)

		// WHEN run
		st, err := e.Run(context.Background(), nil)
		require.NoError(t, err)

		// THEN empirical refusal and throughput sit close to the closed form
		ref := Theory(cfg)
		refuse, err := st.RefusalProbability()
		require.NoError(t, err)
		assert.InDelta(t, ref.RefusalProbability, refuse, 0.01, "mu=%v", mu)
		assert.InDelta(t, ref.Throughput, st.Throughput(), 0.02, "mu=%v", mu)
	}
}
