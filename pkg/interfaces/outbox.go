package interfaces

import (
	"context"
	"time"
)

// Intent operations understood by persistence adapters.
const (
	IntentOpUpsert = "upsert"
	IntentOpDelete = "delete"
)

// Intent is a queued persistence request. Local state is mutated first and
// stays authoritative; the intent only describes what still needs to reach
// the backing store.
type Intent struct {
	ID            string
	Op            string
	Entity        string
	Key           string
	Payload       map[string]any
	Attempt       int
	MaxAttempts   int
	EnqueuedAt    time.Time
	NextAttemptAt time.Time
	LastError     string
}

// IntentSpec describes a persistence intent to enqueue.
type IntentSpec struct {
	Op          string
	Entity      string
	Key         string
	Payload     map[string]any
	MaxAttempts int
}

// Outbox queues persistence intents for asynchronous delivery.
type Outbox interface {
	Enqueue(ctx context.Context, spec IntentSpec) (*Intent, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]*Intent, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, cause error) error
	Pending(ctx context.Context) (int, error)
}

// PersistenceAdapter applies a single intent against the backing list store.
// Implementations are expected to be idempotent: the worker may retry an
// intent whose previous attempt failed after partially completing.
type PersistenceAdapter interface {
	Apply(ctx context.Context, intent Intent) error
}
