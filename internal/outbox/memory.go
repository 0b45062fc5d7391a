package outbox

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-console/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	defaultMaxAttempts = 3
	defaultBaseBackoff = 2 * time.Second
)

// ErrIntentNotFound indicates the referenced intent is unknown to the queue.
var ErrIntentNotFound = errors.New("outbox: intent not found")

// NewInMemory creates a deterministic outbox implementation. Intents are
// held per entity key: a newer intent for the same entity/key supersedes a
// still-pending older one, mirroring whole-record updates at the backing
// store.
func NewInMemory(opts ...Option) interfaces.Outbox {
	mem := &inMemoryOutbox{
		now:         time.Now,
		id:          func() string { return uuid.NewString() },
		intents:     make(map[string]*pendingIntent),
		entityKeys:  make(map[string]string),
		maxAttempts: defaultMaxAttempts,
		baseBackoff: defaultBaseBackoff,
	}
	for _, opt := range opts {
		opt(mem)
	}
	return mem
}

// Option allows customizing the behaviour of the in-memory outbox.
type Option func(*inMemoryOutbox)

// WithClock overrides the internal clock, used mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(o *inMemoryOutbox) {
		if clock != nil {
			o.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator used when enqueuing intents.
func WithIDGenerator(generator func() string) Option {
	return func(o *inMemoryOutbox) {
		if generator != nil {
			o.id = generator
		}
	}
}

// WithDefaultMaxAttempts overrides the retry limit applied when the spec
// leaves it unset.
func WithDefaultMaxAttempts(limit int) Option {
	return func(o *inMemoryOutbox) {
		if limit > 0 {
			o.maxAttempts = limit
		}
	}
}

// WithBaseBackoff overrides the base delay used for retry backoff.
func WithBaseBackoff(base time.Duration) Option {
	return func(o *inMemoryOutbox) {
		if base > 0 {
			o.baseBackoff = base
		}
	}
}

type pendingIntent struct {
	intent interfaces.Intent
	seq    int
}

type inMemoryOutbox struct {
	mu          sync.Mutex
	now         func() time.Time
	id          func() string
	maxAttempts int
	baseBackoff time.Duration
	seq         int
	intents     map[string]*pendingIntent
	entityKeys  map[string]string
}

func (o *inMemoryOutbox) Enqueue(_ context.Context, spec interfaces.IntentSpec) (*interfaces.Intent, error) {
	if spec.Op == "" {
		return nil, errors.New("outbox: op is required")
	}
	if spec.Entity == "" || spec.Key == "" {
		return nil, errors.New("outbox: entity and key are required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	entityKey := spec.Entity + "/" + spec.Key
	if existingID, ok := o.entityKeys[entityKey]; ok {
		delete(o.intents, existingID)
	}

	now := o.now()
	intent := interfaces.Intent{
		ID:            o.id(),
		Op:            spec.Op,
		Entity:        spec.Entity,
		Key:           spec.Key,
		Payload:       clonePayload(spec.Payload),
		MaxAttempts:   spec.MaxAttempts,
		EnqueuedAt:    now,
		NextAttemptAt: now,
	}
	if intent.MaxAttempts == 0 {
		intent.MaxAttempts = o.maxAttempts
	}

	o.seq++
	o.intents[intent.ID] = &pendingIntent{intent: intent, seq: o.seq}
	o.entityKeys[entityKey] = intent.ID

	copied := intent
	return &copied, nil
}

func (o *inMemoryOutbox) ListDue(_ context.Context, until time.Time, limit int) ([]*interfaces.Intent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if limit <= 0 {
		limit = len(o.intents)
	}
	candidates := make([]*pendingIntent, 0, len(o.intents))
	for _, pending := range o.intents {
		if pending.intent.NextAttemptAt.After(until) {
			continue
		}
		candidates = append(candidates, pending)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].intent.NextAttemptAt.Equal(candidates[j].intent.NextAttemptAt) {
			return candidates[i].seq < candidates[j].seq
		}
		return candidates[i].intent.NextAttemptAt.Before(candidates[j].intent.NextAttemptAt)
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]*interfaces.Intent, 0, len(candidates))
	for _, pending := range candidates {
		copied := pending.intent
		copied.Payload = clonePayload(pending.intent.Payload)
		out = append(out, &copied)
	}
	return out, nil
}

// MarkDone removes the delivered intent. Terminal intents leave the queue
// entirely so storage stays bounded over long runs.
func (o *inMemoryOutbox) MarkDone(_ context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	pending, ok := o.intents[id]
	if !ok {
		return ErrIntentNotFound
	}
	o.remove(pending)
	return nil
}

func (o *inMemoryOutbox) MarkFailed(_ context.Context, id string, cause error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	pending, ok := o.intents[id]
	if !ok {
		return ErrIntentNotFound
	}
	pending.intent.Attempt++
	if cause != nil {
		pending.intent.LastError = cause.Error()
	}
	if pending.intent.Attempt >= pending.intent.MaxAttempts {
		o.remove(pending)
		return nil
	}
	backoff := o.baseBackoff << (pending.intent.Attempt - 1)
	pending.intent.NextAttemptAt = o.now().Add(backoff)
	return nil
}

// remove drops an intent from both indexes. The entity-key index is only
// cleared when it still points at this intent; a superseding enqueue may
// have claimed the slot while this one was in flight.
func (o *inMemoryOutbox) remove(pending *pendingIntent) {
	delete(o.intents, pending.intent.ID)
	entityKey := pending.intent.Entity + "/" + pending.intent.Key
	if o.entityKeys[entityKey] == pending.intent.ID {
		delete(o.entityKeys, entityKey)
	}
}

func (o *inMemoryOutbox) Pending(_ context.Context) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.intents), nil
}

func clonePayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	copied := make(map[string]any, len(payload))
	for key, value := range payload {
		copied[key] = value
	}
	return copied
}
