package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-console/pkg/interfaces"
)

type scriptedAdapter struct {
	applied  []interfaces.Intent
	failures int
}

func (a *scriptedAdapter) Apply(_ context.Context, intent interfaces.Intent) error {
	if a.failures > 0 {
		a.failures--
		return errors.New("backing store unavailable")
	}
	a.applied = append(a.applied, intent)
	return nil
}

func fixedClock(at *time.Time) func() time.Time {
	return func() time.Time { return *at }
}

func TestWorkerProcessDeliversDueIntents(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	queue := NewInMemory(WithClock(fixedClock(&now)))
	adapter := &scriptedAdapter{}
	worker := NewWorker(queue, adapter, WithWorkerClock(fixedClock(&now)))

	if _, err := queue.Enqueue(ctx, interfaces.IntentSpec{
		Op:      interfaces.IntentOpUpsert,
		Entity:  "container",
		Key:     "c1",
		Payload: map[string]any{"title": "Highlights"},
	}); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}

	if err := worker.Process(ctx); err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(adapter.applied) != 1 || adapter.applied[0].Key != "c1" {
		t.Fatalf("expected one applied intent, got %v", adapter.applied)
	}

	pending, err := queue.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending error: %v", err)
	}
	if pending != 0 {
		t.Fatalf("expected empty queue, got %d pending", pending)
	}
}

func TestWorkerRetriesWithBackoff(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	queue := NewInMemory(WithClock(fixedClock(&now)), WithBaseBackoff(time.Minute))
	adapter := &scriptedAdapter{failures: 1}
	worker := NewWorker(queue, adapter, WithWorkerClock(fixedClock(&now)))

	if _, err := queue.Enqueue(ctx, interfaces.IntentSpec{
		Op: interfaces.IntentOpDelete, Entity: "news", Key: "n1",
	}); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}

	if err := worker.Process(ctx); err != nil {
		t.Fatalf("first Process error: %v", err)
	}
	if len(adapter.applied) != 0 {
		t.Fatalf("expected failed delivery, got %v", adapter.applied)
	}

	// Still backing off: nothing is due yet.
	if err := worker.Process(ctx); err != nil {
		t.Fatalf("second Process error: %v", err)
	}
	if len(adapter.applied) != 0 {
		t.Fatalf("expected intent to stay backed off, got %v", adapter.applied)
	}

	now = now.Add(2 * time.Minute)
	if err := worker.Process(ctx); err != nil {
		t.Fatalf("third Process error: %v", err)
	}
	if len(adapter.applied) != 1 || adapter.applied[0].Attempt != 1 {
		t.Fatalf("expected retried delivery on attempt 1, got %v", adapter.applied)
	}
}

func TestWorkerDropsIntentAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	queue := NewInMemory(
		WithClock(fixedClock(&now)),
		WithDefaultMaxAttempts(2),
		WithBaseBackoff(time.Second),
	)
	adapter := &scriptedAdapter{failures: 10}
	worker := NewWorker(queue, adapter, WithWorkerClock(fixedClock(&now)))

	if _, err := queue.Enqueue(ctx, interfaces.IntentSpec{
		Op: interfaces.IntentOpUpsert, Entity: "event", Key: "e1",
	}); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}

	for i := 0; i < 4; i++ {
		if err := worker.Process(ctx); err != nil {
			t.Fatalf("Process error: %v", err)
		}
		now = now.Add(time.Minute)
	}

	pending, err := queue.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending error: %v", err)
	}
	if pending != 0 {
		t.Fatalf("expected dead intent to leave the queue, got %d pending", pending)
	}
}

func TestEnqueueSupersedesPendingIntentForSameKey(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	queue := NewInMemory(WithClock(fixedClock(&now)))

	if _, err := queue.Enqueue(ctx, interfaces.IntentSpec{
		Op: interfaces.IntentOpUpsert, Entity: "container", Key: "c1",
		Payload: map[string]any{"title": "old"},
	}); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}
	if _, err := queue.Enqueue(ctx, interfaces.IntentSpec{
		Op: interfaces.IntentOpUpsert, Entity: "container", Key: "c1",
		Payload: map[string]any{"title": "new"},
	}); err != nil {
		t.Fatalf("Enqueue error: %v", err)
	}

	due, err := queue.ListDue(ctx, now, 10)
	if err != nil {
		t.Fatalf("ListDue error: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected superseded intent to be dropped, got %d", len(due))
	}
	if due[0].Payload["title"] != "new" {
		t.Fatalf("expected latest payload to win, got %v", due[0].Payload)
	}
}
