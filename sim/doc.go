// Package sim provides the discrete-event simulation kernel for eventsim.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event.go: timed and conditional event definitions
//   - registry.go: name → definition registries, frozen into each engine
//   - fel.go / cel.go: the future and conditional event lists
//   - handle.go: what a firing handler may read and change
//   - engine.go: the stepping state machine
//
// # Stepping
//
// An Engine is pulled, never pushed. The first pull yields the initial state
// at time 0. Every later pull fires exactly one event: an armed conditional
// event whose guard holds (in registration order) takes priority and leaves
// the clock unchanged; otherwise the earliest timed event is popped and the
// clock jumps to its time. Timed events sharing a time fire in the order they
// were scheduled. The run ends when neither list offers an event.
//
// Bounding a run by simulated time or step count is done outside the kernel
// with UntilTime and FirstN.
//
// # Sub-packages
//
//   - sim/customerqueue/: single-operator queue model built on the kernel
//   - sim/trace/: step trace recording and JSON export
package sim
