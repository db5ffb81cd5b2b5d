package sim

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/sirupsen/logrus"
)

// ErrAborted is the panic value of Advance once a handler or guard has panicked.
var ErrAborted = errors.New("sim: engine aborted by a panicking event")

// Phase is the lifecycle state of an Engine.
type Phase int

const (
	// PhaseUninitialized engines have not yielded the initial snapshot yet.
	PhaseUninitialized Phase = iota
	// PhaseRunning engines have events left to fire, or have not found out yet.
	PhaseRunning
	// PhaseExhausted engines ran out of events; Advance keeps reporting false.
	PhaseExhausted
	// PhaseAborted engines had a handler or guard panic; Advance panics with ErrAborted.
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseRunning:
		return "running"
	case PhaseExhausted:
		return "exhausted"
	case PhaseAborted:
		return "aborted"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Snapshot is the simulation time and state after one step.
type Snapshot[S any] struct {
	Time  float64
	State S
}

// InitialEntry lists timed events pending at an absolute time when the simulation starts.
type InitialEntry struct {
	Time   float64
	Events []string
}

// Recorder receives one call per fired event.
type Recorder interface {
	RecordStep(step int, time float64, event string, kind string)
}

// Cloner is implemented by states holding maps, slices or pointers.
// Clone must return a copy that shares no mutable memory with the receiver.
type Cloner[S any] interface {
	Clone() S
}

type options struct {
	recorder Recorder
	clone    any
}

// Option configures an Engine.
type Option func(*options)

// WithRecorder reports every fired event to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithClone sets the deep copy used between steps. It takes precedence over
// a Clone method of the state.
func WithClone[S any](clone func(S) S) Option {
	return func(o *options) { o.clone = clone }
}

type initialTimed struct {
	time float64
	id   EventID
}

// Engine advances a user state S through discrete event firings.
//
// The engine is pull-based: nothing happens until Advance is called. The
// first call yields (0, initial state) without firing anything. Each later
// call fires exactly one event: the first armed conditional event (in
// registration order) whose guard holds, otherwise the earliest timed event.
// Conditional events never move the clock. When neither list offers an
// event the engine is exhausted and Advance reports false forever.
//
// Handlers and guards work on copies of the state, and every snapshot is a
// copy. A plain assignment copies only the top level of S: when S holds maps,
// slices or pointers, implement Cloner or pass WithClone, otherwise
// snapshots share that memory with later steps.
//
// Engine is not safe for concurrent use.
type Engine[S any] struct {
	reg        *Registry[S]
	clone      func(S) S
	initial    S
	initialFEL []initialTimed
	initialCEL []EventID
	recorder   Recorder

	phase   Phase
	clock   float64
	state   S
	fel     *FutureEventList
	cel     *ConditionalEventList
	last    FiredEvent
	metrics *Metrics
}

// NewEngine builds an engine from the initial state, the initially pending
// timed events, the initially armed conditional events and the event registry.
// The registry is copied; registering more events afterwards has no effect on
// the engine.
func NewEngine[S any](initial S, fel []InitialEntry, cel []string, reg *Registry[S], opts ...Option) (*Engine[S], error) {
	if reg == nil {
		return nil, fmt.Errorf("nil registry: %w", ErrInvalidEvent)
	}
	if err := reg.Err(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine[S]{
		reg:      reg.frozen(),
		recorder: o.recorder,
		metrics:  NewMetrics(),
	}
	switch c := o.clone.(type) {
	case nil:
		if _, ok := any(initial).(Cloner[S]); ok {
			e.clone = func(s S) S { return any(s).(Cloner[S]).Clone() }
		}
	case func(S) S:
		e.clone = c
	default:
		return nil, fmt.Errorf("sim: WithClone got %T, want func(%T) %T", o.clone, initial, initial)
	}
	e.initial = e.copyState(initial)
	for _, entry := range fel {
		if entry.Time < 0 || math.IsNaN(entry.Time) || math.IsInf(entry.Time, 0) {
			return nil, fmt.Errorf("initial entry at %v: %w", entry.Time, ErrInvalidTime)
		}
		for _, name := range entry.Events {
			id, err := e.reg.timedID(name)
			if err != nil {
				return nil, fmt.Errorf("initial future event list: %w", err)
			}
			e.initialFEL = append(e.initialFEL, initialTimed{time: entry.Time, id: id})
		}
	}
	for _, name := range cel {
		id, err := e.reg.conditionalID(name)
		if err != nil {
			return nil, fmt.Errorf("initial conditional event list: %w", err)
		}
		e.initialCEL = append(e.initialCEL, id)
	}
	return e, nil
}

// Phase returns the lifecycle state.
func (e *Engine[S]) Phase() Phase { return e.phase }

// Clock returns the time of the last yielded snapshot.
func (e *Engine[S]) Clock() float64 { return e.clock }

// LastFired returns the event fired by the most recent step.
// It reports false before the first event has fired.
func (e *Engine[S]) LastFired() (FiredEvent, bool) {
	return e.last, e.metrics.Steps > 0
}

// Metrics returns the counters accumulated so far.
func (e *Engine[S]) Metrics() *Metrics { return e.metrics }

// NextTime reports the time of the snapshot the next Advance would yield,
// without firing anything. It reports false when Advance would report false.
// Guards of armed conditional events are evaluated on copies of the state.
func (e *Engine[S]) NextTime() (float64, bool) {
	switch e.phase {
	case PhaseUninitialized:
		return 0, true
	case PhaseExhausted:
		return 0, false
	case PhaseAborted:
		panic(ErrAborted)
	}
	e.phase = PhaseAborted
	_, ok := e.firstEnabled(e.state)
	e.phase = PhaseRunning
	if ok {
		return e.clock, true
	}
	return e.fel.PeekTime()
}

// Advance performs one step and returns the resulting snapshot.
// It reports false once no event is left to fire. Advance panics with
// ErrAborted if an earlier step panicked.
func (e *Engine[S]) Advance() (Snapshot[S], bool) {
	switch e.phase {
	case PhaseUninitialized:
		e.start()
		return e.snapshot(), true
	case PhaseExhausted:
		return Snapshot[S]{}, false
	case PhaseAborted:
		panic(ErrAborted)
	}
	return e.step()
}

// All returns the remaining snapshots as a sequence of (time, state) pairs.
// The sequence ends when the engine is exhausted or the consumer stops.
func (e *Engine[S]) All() iter.Seq2[float64, S] {
	return func(yield func(float64, S) bool) {
		for {
			snap, ok := e.Advance()
			if !ok || !yield(snap.Time, snap.State) {
				return
			}
		}
	}
}

func (e *Engine[S]) start() {
	e.clock = 0
	e.state = e.copyState(e.initial)
	e.fel = NewFutureEventList()
	for _, it := range e.initialFEL {
		e.fel.Schedule(it.time, it.id)
	}
	e.cel = NewConditionalEventList(len(e.reg.cond))
	for _, id := range e.initialCEL {
		e.cel.Arm(id)
	}
	e.phase = PhaseRunning
	logrus.Debugf("[t=%.6f] simulation started: %d timed pending, %d conditional armed", e.clock, e.fel.Len(), e.cel.Len())
}

func (e *Engine[S]) step() (Snapshot[S], bool) {
	// Handlers work on a copy that is committed only if they return normally.
	work := e.copyState(e.state)
	h := &Handle[S]{time: e.clock, state: &work, reg: e.reg, fel: e.fel, cel: e.cel}
	e.phase = PhaseAborted

	fire, fired, ok := e.selectEvent(h)
	if !ok {
		h.expired = true
		e.phase = PhaseExhausted
		e.metrics.Exhausted = true
		logrus.Infof("[t=%.6f] simulation exhausted after %d steps", e.clock, e.metrics.Steps)
		return Snapshot[S]{}, false
	}

	logrus.Debugf("[t=%.6f] firing %s event %q", fired.Time, fired.Kind, fired.Name)
	fire(h)
	h.expired = true

	e.clock = h.time
	e.state = work
	e.last = fired
	e.phase = PhaseRunning
	e.metrics.record(fired)
	if e.recorder != nil {
		e.recorder.RecordStep(e.metrics.Steps, fired.Time, fired.Name, fired.Kind.String())
	}
	return e.snapshot(), true
}

// selectEvent picks the event of the next step: an enabled conditional event
// if there is one, otherwise the earliest timed event. The chosen event is
// removed from its list and h is moved to its firing time.
func (e *Engine[S]) selectEvent(h *Handle[S]) (func(*Handle[S]), FiredEvent, bool) {
	id, ok := e.firstEnabled(*h.state)
	if ok {
		e.cel.Disarm(id)
		ev := FiredEvent{Name: e.reg.condNames[id], Kind: KindConditional, Time: h.time}
		return e.reg.cond[id].Fire, ev, true
	}

	t, id, ok := e.fel.PopEarliest()
	if !ok {
		return nil, FiredEvent{}, false
	}
	h.time = t
	ev := FiredEvent{Name: e.reg.timedNames[id], Kind: KindTimed, Time: t}
	return e.reg.timed[id].Fire, ev, true
}

// firstEnabled returns the first armed conditional event whose guard holds
// for state. Each guard gets its own read-only handle over a copy of state,
// so nothing a guard writes survives it.
func (e *Engine[S]) firstEnabled(state S) (EventID, bool) {
	g := &Handle[S]{time: e.clock, reg: e.reg, fel: e.fel, cel: e.cel, readOnly: true}
	defer func() { g.expired = true }()
	return e.cel.FirstEnabled(func(id EventID) bool {
		view := e.copyState(state)
		g.state = &view
		return e.reg.cond[id].Enabled(g)
	})
}

func (e *Engine[S]) copyState(s S) S {
	if e.clone == nil {
		return s
	}
	return e.clone(s)
}

func (e *Engine[S]) snapshot() Snapshot[S] {
	return Snapshot[S]{Time: e.clock, State: e.copyState(e.state)}
}
