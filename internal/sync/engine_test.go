package sync

import (
	"context"
	"errors"
	"testing"
)

type entry struct {
	ID      string
	Checked bool
}

func okPersister(calls *[][]entry) Persister[entry] {
	return func(ctx context.Context, all []entry) error {
		if calls != nil {
			*calls = append(*calls, all)
		}
		return nil
	}
}

func TestApply_Success(t *testing.T) {
	t.Parallel()
	var persisted [][]entry
	e := New("items", []entry{{ID: "1"}}, okPersister(&persisted), nil)

	got, err := e.Apply(context.Background(), func(current []entry) []entry {
		next := append([]entry(nil), current...)
		return append(next, entry{ID: "2"})
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("state after apply = %v", got)
	}
	if len(persisted) != 1 || len(persisted[0]) != 2 {
		t.Fatalf("persister received %v, want the complete next collection", persisted)
	}
	if state := e.Collection(); len(state) != 2 {
		t.Errorf("Collection = %v", state)
	}
}

func TestApply_RevertsToSnapshotOnFailure(t *testing.T) {
	t.Parallel()
	failure := errors.New("connection refused")
	e := New("items", []entry{{ID: "1", Checked: true}}, func(ctx context.Context, all []entry) error {
		return failure
	}, nil)

	got, err := e.Apply(context.Background(), func(current []entry) []entry {
		return []entry{}
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected wrapped persist error, got %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" || !got[0].Checked {
		t.Errorf("returned state = %v, want the pre-mutation snapshot", got)
	}
	state := e.Collection()
	if len(state) != 1 || state[0].ID != "1" || !state[0].Checked {
		t.Errorf("engine state = %v, want the pre-mutation snapshot", state)
	}
}

func TestApply_ObserverSeesInstallThenRollback(t *testing.T) {
	t.Parallel()
	e := New("items", []entry{{ID: "1"}}, func(ctx context.Context, all []entry) error {
		return errors.New("boom")
	}, nil)

	var transitions [][]entry
	e.OnChange(func(state []entry) {
		transitions = append(transitions, state)
	})

	_, _ = e.Apply(context.Background(), func(current []entry) []entry {
		return append(append([]entry(nil), current...), entry{ID: "2"})
	})

	if len(transitions) != 2 {
		t.Fatalf("expected 2 transitions (install, rollback), got %d", len(transitions))
	}
	if len(transitions[0]) != 2 {
		t.Errorf("first transition = %v, want the optimistic state", transitions[0])
	}
	if len(transitions[1]) != 1 {
		t.Errorf("second transition = %v, want the snapshot", transitions[1])
	}
}

func TestApply_RejectsOverlappingMutation(t *testing.T) {
	t.Parallel()
	inPersist := make(chan struct{})
	release := make(chan struct{})
	signaled := false
	e := New("items", nil, func(ctx context.Context, all []entry) error {
		// The persister runs again for the post-completion Apply below;
		// only the first call may close inPersist.
		if !signaled {
			signaled = true
			close(inPersist)
		}
		<-release
		return nil
	}, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = e.Apply(context.Background(), func(current []entry) []entry {
			return append(current, entry{ID: "1"})
		})
	}()

	<-inPersist
	_, err := e.Apply(context.Background(), func(current []entry) []entry {
		return current
	})
	if !errors.Is(err, ErrMutationInFlight) {
		t.Errorf("expected ErrMutationInFlight, got %v", err)
	}

	close(release)
	<-done

	// After the first persist resolves the engine accepts mutations again.
	if _, err := e.Apply(context.Background(), func(current []entry) []entry {
		return current
	}); err != nil {
		t.Errorf("Apply after completion: %v", err)
	}
}

func TestReset_FailsInFlight(t *testing.T) {
	t.Parallel()
	inPersist := make(chan struct{})
	release := make(chan struct{})
	e := New("items", nil, func(ctx context.Context, all []entry) error {
		close(inPersist)
		<-release
		return nil
	}, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = e.Apply(context.Background(), func(current []entry) []entry { return current })
	}()

	<-inPersist
	if err := e.Reset([]entry{{ID: "9"}}); !errors.Is(err, ErrMutationInFlight) {
		t.Errorf("Reset during persist: got %v, want ErrMutationInFlight", err)
	}
	close(release)
	<-done

	if err := e.Reset([]entry{{ID: "9"}}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if state := e.Collection(); len(state) != 1 || state[0].ID != "9" {
		t.Errorf("state after reset = %v", state)
	}
}

func TestCollection_ReturnsCopy(t *testing.T) {
	t.Parallel()
	e := New("items", []entry{{ID: "1"}}, okPersister(nil), nil)
	c := e.Collection()
	c[0].ID = "mutated"
	if e.Collection()[0].ID != "1" {
		t.Error("Collection exposed the engine's internal slice")
	}
}

func TestStateUnknownError(t *testing.T) {
	t.Parallel()
	cause := errors.New("write failed")
	err := &StateUnknownError{Err: cause}

	if !errors.Is(err, ErrStateUnknown) {
		t.Error("StateUnknownError does not match ErrStateUnknown")
	}
	if !errors.Is(err, cause) {
		t.Error("StateUnknownError does not unwrap to its cause")
	}
}
