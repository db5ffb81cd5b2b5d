package sim

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrHandleExpired is the panic value when a handle outlives its invocation.
	ErrHandleExpired = errors.New("sim: handle used outside of its event invocation")
	// ErrReadOnlyHandle is the panic value when a guard tries to change the event lists.
	ErrReadOnlyHandle = errors.New("sim: guard attempted to modify the event lists")
)

// Handle gives a firing handler access to the simulation.
// It is bound to one invocation: calling it after the handler (or guard)
// returned panics. Guards receive a read-only handle; any attempt to change
// the future or conditional event list from a guard panics.
//
// Unknown event names and invalid delays are programmer errors and panic.
type Handle[S any] struct {
	time     float64
	state    *S
	reg      *Registry[S]
	fel      *FutureEventList
	cel      *ConditionalEventList
	readOnly bool
	expired  bool
}

// Time returns the simulation time of the current step.
func (h *Handle[S]) Time() float64 {
	h.check(false)
	return h.time
}

// State returns the mutable state of the current step.
func (h *Handle[S]) State() *S {
	h.check(false)
	return h.state
}

// Schedule queues the timed event name to fire delta time units from now.
// delta must be finite and non-negative, and the resulting time finite.
// A zero delay fires on a later step at the current time, never within this one.
func (h *Handle[S]) Schedule(delta float64, name string) {
	h.check(true)
	if delta < 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		panic(fmt.Errorf("sim: schedule %q with delay %v: %w", name, delta, ErrInvalidTime))
	}
	at := h.time + delta
	if math.IsInf(at, 0) {
		panic(fmt.Errorf("sim: schedule %q at %v + %v overflows: %w", name, h.time, delta, ErrInvalidTime))
	}
	h.fel.Schedule(at, h.mustTimed(name))
}

// ScheduleConditional arms the conditional event name.
func (h *Handle[S]) ScheduleConditional(name string) {
	h.check(true)
	h.cel.Arm(h.mustConditional(name))
}

// UnscheduleNext removes the earliest pending occurrence of the timed event name.
// It reports whether an occurrence was removed.
func (h *Handle[S]) UnscheduleNext(name string) bool {
	h.check(true)
	return h.fel.UnscheduleNext(h.mustTimed(name))
}

// UnscheduleConditional disarms the conditional event name and reports whether it was armed.
func (h *Handle[S]) UnscheduleConditional(name string) bool {
	h.check(true)
	return h.cel.Disarm(h.mustConditional(name))
}

// IsScheduled reports whether the timed event name is pending at any time.
func (h *Handle[S]) IsScheduled(name string) bool {
	h.check(false)
	return h.fel.IsScheduled(h.mustTimed(name))
}

// IsConditionalScheduled reports whether the conditional event name is armed.
func (h *Handle[S]) IsConditionalScheduled(name string) bool {
	h.check(false)
	return h.cel.IsArmed(h.mustConditional(name))
}

func (h *Handle[S]) check(mutates bool) {
	if h.expired {
		panic(ErrHandleExpired)
	}
	if mutates && h.readOnly {
		panic(ErrReadOnlyHandle)
	}
}

func (h *Handle[S]) mustTimed(name string) EventID {
	id, err := h.reg.timedID(name)
	if err != nil {
		panic(fmt.Errorf("sim: %w", err))
	}
	return id
}

func (h *Handle[S]) mustConditional(name string) EventID {
	id, err := h.reg.conditionalID(name)
	if err != nil {
		panic(fmt.Errorf("sim: %w", err))
	}
	return id
}
