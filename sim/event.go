package sim

// EventKind distinguishes the two registries an event name can live in.
type EventKind int

const (
	// KindTimed events fire when popped from the future event list.
	KindTimed EventKind = iota
	// KindConditional events fire as soon as their guard holds.
	KindConditional
)

func (k EventKind) String() string {
	switch k {
	case KindTimed:
		return "timed"
	case KindConditional:
		return "conditional"
	default:
		return "unknown"
	}
}

// EventID is the dense index of an event inside its registry.
// IDs are only meaningful together with the kind they were issued for.
type EventID int

// TimedEvent is a state transition fired at a scheduled simulation time.
type TimedEvent[S any] interface {
	Fire(h *Handle[S])
}

// ConditionalEvent is a state transition fired as soon as it is armed and
// Enabled reports true for the current time and state.
// Enabled must not mutate the state; the handle it receives is read-only.
type ConditionalEvent[S any] interface {
	Fire(h *Handle[S])
	Enabled(h *Handle[S]) bool
}

// TimedFunc adapts a plain function to TimedEvent. The registry rejects a nil TimedFunc.
type TimedFunc[S any] func(h *Handle[S])

// Fire calls f(h).
func (f TimedFunc[S]) Fire(h *Handle[S]) { f(h) }

type conditionalFunc[S any] struct {
	fire  func(*Handle[S])
	guard func(*Handle[S]) bool
}

func (c conditionalFunc[S]) Fire(h *Handle[S])          { c.fire(h) }
func (c conditionalFunc[S]) Enabled(h *Handle[S]) bool { return c.guard(h) }

// ConditionalFunc builds a ConditionalEvent from a handler and a guard.
// A nil argument yields a nil event, which the registry rejects.
func ConditionalFunc[S any](fire func(*Handle[S]), guard func(*Handle[S]) bool) ConditionalEvent[S] {
	if fire == nil || guard == nil {
		return nil
	}
	return conditionalFunc[S]{fire: fire, guard: guard}
}

// FiredEvent describes the event fired by the most recent step.
type FiredEvent struct {
	Name string
	Kind EventKind
	Time float64
}
