// Package customerqueue models customers arriving at a single operator.
//
// Customers arrive with exponentially distributed gaps and wait in a queue.
// The moment the operator is free and someone is waiting, that customer moves
// into service; service takes a normally distributed time. Moving into
// service is a conditional event, so it resolves at the instant it becomes
// possible, before the clock moves on.
package customerqueue

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/eventsim/sim"
)

// Event names.
const (
	CustomerArrival         = "CustomerArrival"
	CustomerServed          = "CustomerServed"
	CustomerMovingToService = "CustomerMovingToService"
)

// State is the model state carried through the simulation.
// The random streams are shared by all snapshots of one run.
type State struct {
	QueueLength       int
	OperatorAvailable bool
	Arrivals          int // customers arrived so far
	Served            int // customers whose service finished

	arrivals *rand.Rand
	service  *rand.Rand
}

// New builds an engine for cfg. The first arrival happens at time 0.
func New(cfg Config, opts ...sim.Option) (*sim.Engine[State], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("customer queue config: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	initial := State{
		OperatorAvailable: true,
		arrivals:          rng.ForSubsystem(sim.SubsystemArrivals),
		service:           rng.ForSubsystem(sim.SubsystemService),
	}

	reg := sim.NewRegistry[State]().
		Timed(CustomerArrival, arrival(cfg.ArrivalRate)).
		Timed(CustomerServed, served()).
		Conditional(CustomerMovingToService, movingToService(cfg.ServiceMean, cfg.ServiceStdDev))

	return sim.NewEngine(initial,
		[]sim.InitialEntry{{Time: 0, Events: []string{CustomerArrival}}},
		[]string{CustomerMovingToService},
		reg, opts...)
}

func arrival(rate float64) sim.TimedEvent[State] {
	return sim.TimedFunc[State](func(h *sim.Handle[State]) {
		s := h.State()
		gap := s.arrivals.ExpFloat64() / rate

		s.QueueLength++
		s.Arrivals++
		h.Schedule(gap, CustomerArrival)
	})
}

func movingToService(mean, stdDev float64) sim.ConditionalEvent[State] {
	return sim.ConditionalFunc(
		func(h *sim.Handle[State]) {
			s := h.State()
			d := s.service.NormFloat64()*stdDev + mean
			if d < 0 {
				logrus.Warnf("[t=%.6f] negative service time %.6f clamped to 0", h.Time(), d)
				d = 0
			}

			s.QueueLength--
			s.OperatorAvailable = false
			h.Schedule(d, CustomerServed)
			h.ScheduleConditional(CustomerMovingToService)
		},
		func(h *sim.Handle[State]) bool {
			s := h.State()
			return s.OperatorAvailable && s.QueueLength > 0
		},
	)
}

func served() sim.TimedEvent[State] {
	return sim.TimedFunc[State](func(h *sim.Handle[State]) {
		s := h.State()
		s.OperatorAvailable = true
		s.Served++
	})
}
