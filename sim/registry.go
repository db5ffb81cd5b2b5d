package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateEvent is returned when a name is registered twice in the same registry.
	ErrDuplicateEvent = errors.New("duplicate event name")
	// ErrUnknownEvent is returned when a name is not present in the registry it is looked up in.
	ErrUnknownEvent = errors.New("unknown event name")
	// ErrInvalidEvent is returned for empty names and nil definitions.
	ErrInvalidEvent = errors.New("invalid event definition")
	// ErrInvalidTime is returned for negative, NaN or infinite initial times.
	ErrInvalidTime = errors.New("invalid event time")
)

// Registry maps event names to their definitions.
// Timed and conditional events live in separate namespaces, so the same
// name may be registered once as each kind. Registration order is kept and
// decides which of several simultaneously enabled conditional events fires
// first.
//
// A Registry is a builder: NewEngine freezes a copy of it, so later
// registrations never affect an engine that already exists.
type Registry[S any] struct {
	timedNames []string
	timed      []TimedEvent[S]
	timedIDs   map[string]EventID

	condNames []string
	cond      []ConditionalEvent[S]
	condIDs   map[string]EventID

	err error
}

// NewRegistry returns an empty registry.
func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{
		timedIDs: make(map[string]EventID),
		condIDs:  make(map[string]EventID),
	}
}

// Timed registers a timed event under name and returns the registry for chaining.
// Registration problems are reported by Err and by NewEngine.
func (r *Registry[S]) Timed(name string, ev TimedEvent[S]) *Registry[S] {
	if r.err != nil {
		return r
	}
	switch {
	case name == "" || isNilTimed(ev):
		r.err = fmt.Errorf("timed event %q: %w", name, ErrInvalidEvent)
	case r.hasTimed(name):
		r.err = fmt.Errorf("timed event %q: %w", name, ErrDuplicateEvent)
	default:
		r.timedIDs[name] = EventID(len(r.timed))
		r.timedNames = append(r.timedNames, name)
		r.timed = append(r.timed, ev)
	}
	return r
}

// Conditional registers a conditional event under name and returns the registry for chaining.
func (r *Registry[S]) Conditional(name string, ev ConditionalEvent[S]) *Registry[S] {
	if r.err != nil {
		return r
	}
	switch {
	case name == "" || ev == nil:
		r.err = fmt.Errorf("conditional event %q: %w", name, ErrInvalidEvent)
	case r.hasConditional(name):
		r.err = fmt.Errorf("conditional event %q: %w", name, ErrDuplicateEvent)
	default:
		r.condIDs[name] = EventID(len(r.cond))
		r.condNames = append(r.condNames, name)
		r.cond = append(r.cond, ev)
	}
	return r
}

// isNilTimed also catches a nil TimedFunc, which is a non-nil interface value.
func isNilTimed[S any](ev TimedEvent[S]) bool {
	if ev == nil {
		return true
	}
	f, ok := ev.(TimedFunc[S])
	return ok && f == nil
}

// Err returns the first registration error, if any.
func (r *Registry[S]) Err() error { return r.err }

func (r *Registry[S]) hasTimed(name string) bool {
	_, ok := r.timedIDs[name]
	return ok
}

func (r *Registry[S]) hasConditional(name string) bool {
	_, ok := r.condIDs[name]
	return ok
}

// frozen returns a copy that shares no mutable state with r.
func (r *Registry[S]) frozen() *Registry[S] {
	c := &Registry[S]{
		timedNames: append([]string(nil), r.timedNames...),
		timed:      append([]TimedEvent[S](nil), r.timed...),
		timedIDs:   make(map[string]EventID, len(r.timedIDs)),
		condNames:  append([]string(nil), r.condNames...),
		cond:       append([]ConditionalEvent[S](nil), r.cond...),
		condIDs:    make(map[string]EventID, len(r.condIDs)),
	}
	for k, v := range r.timedIDs {
		c.timedIDs[k] = v
	}
	for k, v := range r.condIDs {
		c.condIDs[k] = v
	}
	return c
}

func (r *Registry[S]) timedID(name string) (EventID, error) {
	id, ok := r.timedIDs[name]
	if !ok {
		return 0, fmt.Errorf("timed event %q: %w", name, ErrUnknownEvent)
	}
	return id, nil
}

func (r *Registry[S]) conditionalID(name string) (EventID, error) {
	id, ok := r.condIDs[name]
	if !ok {
		return 0, fmt.Errorf("conditional event %q: %w", name, ErrUnknownEvent)
	}
	return id, nil
}
