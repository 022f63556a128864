package audit

import (
	"context"
	"time"

	id "placemaker/pkg/domain"
)

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
	now   func() time.Time
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store, now: time.Now}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = p.now()
	}
	return p.store.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, personalID id.PersonalID) ([]Event, error) {
	return p.store.ListByPerson(ctx, personalID)
}

// Queue is a Publisher that hands events to a Worker over a buffered channel
// so callers do not wait on the store.
type Queue struct {
	events chan Event
}

func NewQueue(size int) *Queue {
	return &Queue{events: make(chan Event, size)}
}

// Emit blocks while the buffer is full, until ctx is done.
func (q *Queue) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	select {
	case q.events <- base:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) Events() <-chan Event {
	return q.events
}

// Close stops intake; the Worker drains what is buffered and returns.
func (q *Queue) Close() {
	close(q.events)
}
