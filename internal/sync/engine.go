// Package sync implements the optimistic-update protocol shared by every
// mutating operation: compute the next state, install it locally so the UI
// reflects it immediately, persist the complete collection to the remote
// store, and roll back to the pre-mutation snapshot when the persist fails.
package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/justin-mueller/Einkaufsliste/internal/telemetry"
)

// ErrMutationInFlight indicates a second optimistic mutation was started on
// a collection while an earlier persist was still outstanding. Overlapping
// mutations would corrupt the revert snapshot, so the engine rejects them.
var ErrMutationInFlight = errors.New("mutation already in flight for this collection")

// ErrStateUnknown marks a failure on a path without a revert snapshot. The
// local view may no longer match the store; the caller must reload.
var ErrStateUnknown = errors.New("state may be inconsistent, reload required")

// StateUnknownError wraps a persist failure that cannot be reverted.
type StateUnknownError struct {
	Err error
}

func (e *StateUnknownError) Error() string {
	return "state may be inconsistent, reload required: " + e.Err.Error()
}

func (e *StateUnknownError) Unwrap() error { return e.Err }

// Is matches ErrStateUnknown so callers can test with errors.Is without
// caring about the wrapped cause.
func (e *StateUnknownError) Is(target error) bool { return target == ErrStateUnknown }

// Mutation computes the next collection state from the current one. It must
// be pure and synchronous: no network calls, no mutation of the input.
type Mutation[T any] func(current []T) []T

// Persister writes the complete replacement collection to the remote store.
// *store.Client's Replace methods satisfy this per collection.
type Persister[T any] func(ctx context.Context, all []T) error

// Engine owns the in-memory state of one collection and serializes
// optimistic mutations against it. The zero value is not usable; construct
// with New.
type Engine[T any] struct {
	name    string
	persist Persister[T]
	events  *telemetry.Emitter

	mu       sync.Mutex
	state    []T
	inFlight bool

	// onChange, when set, observes every state transition (optimistic
	// install and rollback alike) while the engine's lock is held.
	onChange func([]T)
}

// New creates an engine for a named collection, seeded with the state loaded
// from the store at view-mount time. The emitter may be nil.
func New[T any](name string, initial []T, persist Persister[T], events *telemetry.Emitter) *Engine[T] {
	return &Engine[T]{
		name:    name,
		persist: persist,
		events:  events,
		state:   initial,
	}
}

// OnChange registers an observer for state transitions. Used by the TUI to
// re-render as soon as the optimistic write lands, before the persist call
// resolves.
func (e *Engine[T]) OnChange(fn func([]T)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// Collection returns a copy of the current state.
func (e *Engine[T]) Collection() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]T, len(e.state))
	copy(out, e.state)
	return out
}

// Reset replaces the engine's state with a fresh load from the store,
// discarding any local view. It fails while a mutation is in flight.
func (e *Engine[T]) Reset(state []T) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return fmt.Errorf("sync: reset %s: %w", e.name, ErrMutationInFlight)
	}
	e.state = state
	e.notify(state)
	return nil
}

// Apply runs one optimistic mutation to completion: snapshot, local install,
// persist, and rollback on failure. The returned slice is the state the
// engine holds after the call — the next state on success, the snapshot
// after a rollback.
//
// The snapshot captured before the mutation is the only value ever rolled
// back to; the engine never recomputes a prior state. On a persist failure
// the error from the store client is returned wrapped, after the rollback
// has completed.
func (e *Engine[T]) Apply(ctx context.Context, next Mutation[T]) ([]T, error) {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return nil, fmt.Errorf("sync: %s: %w", e.name, ErrMutationInFlight)
	}
	e.inFlight = true

	snapshot := e.state
	nextState := next(snapshot)
	e.state = nextState
	e.notify(nextState)
	e.mu.Unlock()

	e.emit(telemetry.KindMutationApplied, len(nextState))

	err := e.persist(ctx, nextState)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false

	if err != nil {
		e.state = snapshot
		e.notify(snapshot)
		e.emit(telemetry.KindMutationReverted, len(snapshot))
		return snapshot, fmt.Errorf("sync: persist %s: %w", e.name, err)
	}

	e.emit(telemetry.KindMutationPersisted, len(nextState))
	return nextState, nil
}

// notify invokes the observer; the caller holds e.mu.
func (e *Engine[T]) notify(state []T) {
	if e.onChange == nil {
		return
	}
	out := make([]T, len(state))
	copy(out, state)
	e.onChange(out)
}

func (e *Engine[T]) emit(kind string, count int) {
	_ = e.events.Emit(telemetry.Event{
		Kind:       kind,
		Collection: e.name,
		Count:      count,
	})
}
