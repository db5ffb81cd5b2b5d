package customerqueue

import (
	"fmt"
	"math"
)

// Config parameterizes the single-operator customer queue.
type Config struct {
	ArrivalRate   float64 // customers per time unit (exponential inter-arrival rate)
	ServiceMean   float64 // mean service duration
	ServiceStdDev float64 // standard deviation of the service duration
	Seed          int64
}

// DefaultConfig returns the parameters used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		ArrivalRate:   1.0,
		ServiceMean:   0.8,
		ServiceStdDev: 0.2,
		Seed:          42,
	}
}

// Validate checks parameter ranges.
func (c Config) Validate() error {
	if !(c.ArrivalRate > 0) || math.IsInf(c.ArrivalRate, 0) {
		return fmt.Errorf("arrival_rate must be positive and finite, got %f", c.ArrivalRate)
	}
	if c.ServiceMean < 0 || math.IsNaN(c.ServiceMean) || math.IsInf(c.ServiceMean, 0) {
		return fmt.Errorf("service_mean must be non-negative and finite, got %f", c.ServiceMean)
	}
	if c.ServiceStdDev < 0 || math.IsNaN(c.ServiceStdDev) || math.IsInf(c.ServiceStdDev, 0) {
		return fmt.Errorf("service_stddev must be non-negative and finite, got %f", c.ServiceStdDev)
	}
	return nil
}
