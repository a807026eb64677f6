package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidtube/user-service/internal/core/domain"
	"github.com/vidtube/user-service/internal/core/ports"
)

type recordingService struct {
	mu       sync.Mutex
	recorded []ports.AccountEventInput
	err      error
	done     chan struct{}
}

func (s *recordingService) Record(_ context.Context, event ports.AccountEventInput) error {
	s.mu.Lock()
	s.recorded = append(s.recorded, event)
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
	return s.err
}

func (s *recordingService) events() []ports.AccountEventInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AccountEventInput, len(s.recorded))
	copy(out, s.recorded)
	return out
}

func waitFor(t *testing.T, done <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}, 8)}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.AccountEventInput{Username: "janed", Action: domain.ActionRegistered})
	d.Enqueue(ports.AccountEventInput{Username: "bob", Action: domain.ActionLoggedIn})
	waitFor(t, svc.done, 2)

	got := svc.events()
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	seen := map[string]domain.AccountAction{}
	for _, e := range got {
		seen[e.Username] = e.Action
	}
	if seen["janed"] != domain.ActionRegistered || seen["bob"] != domain.ActionLoggedIn {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestDispatcher_SameUserSameShard(t *testing.T) {
	d := NewDispatcher(8, nil, zerolog.Nop())

	first := d.shardIndex("janed")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("janed"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}, 16)}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []domain.AccountAction{
		domain.ActionRegistered,
		domain.ActionLoggedIn,
		domain.ActionLoggedOut,
		domain.ActionLoggedIn,
	}
	for _, a := range actions {
		d.Enqueue(ports.AccountEventInput{Username: "janed", Action: a})
	}
	waitFor(t, svc.done, len(actions))

	got := svc.events()
	for i, e := range got {
		if e.Action != actions[i] {
			t.Fatalf("event %d out of order: got %s, want %s", i, e.Action, actions[i])
		}
	}
}

func TestDispatcher_RecordFailureDoesNotStopWorker(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}, 8), err: errors.New("insert failed")}
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.AccountEventInput{Username: "janed", Action: domain.ActionRegistered})
	d.Enqueue(ports.AccountEventInput{Username: "janed", Action: domain.ActionLoggedIn})
	waitFor(t, svc.done, 2)

	if got := len(svc.events()); got != 2 {
		t.Fatalf("worker stopped after failure, delivered %d of 2", got)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
