package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned when a Config cannot drive a meaningful run.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds the two immutable parameters of a run.
type Config struct {
	Horizon     float64 // total virtual duration to simulate (must be > 0)
	ServiceRate float64 // exponential service rate, completions per unit time (must be > 0)
}

// Validate rejects non-positive or non-finite parameters.
func (c Config) Validate() error {
	if err := positiveFinite("horizon", c.Horizon); err != nil {
		return err
	}
	return positiveFinite("service rate", c.ServiceRate)
}

func positiveFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, name, v)
	}
	if v <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidConfig, name, v)
	}
	return nil
}
