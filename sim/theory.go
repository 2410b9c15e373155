package sim

import "math"

// meanArrivalGap is the mean of the uniform [0,1) inter-arrival distribution.
const meanArrivalGap = 0.5

// Reference holds exact steady-state values for the loss system.
type Reference struct {
	ArrivalRate        float64 // arrivals per unit time
	RefusalProbability float64 // probability an arrival finds the channel busy
	AcceptanceRatio    float64 // 1 - RefusalProbability
	Throughput         float64 // accepted arrivals per unit time
}

// Theory computes the steady-state reference for cfg.
//
// Service is memoryless, so right after any arrival the channel is busy with
// an Exp(μ) residual regardless of history. The next arrival is refused iff
// that residual exceeds its gap U ~ Uniform[0,1):
//
//	P(refuse) = E[exp(-μU)] = (1 - exp(-μ)) / μ
func Theory(cfg Config) Reference {
	mu := cfg.ServiceRate
	var refuse float64
	if mu < 1e-9 {
		// limit of (1 - e^-μ)/μ as μ → 0
		refuse = 1 - mu/2
	} else {
		refuse = -math.Expm1(-mu) / mu
	}
	rate := 1 / meanArrivalGap
	return Reference{
		ArrivalRate:        rate,
		RefusalProbability: refuse,
		AcceptanceRatio:    1 - refuse,
		Throughput:         rate * (1 - refuse),
	}
}
