package audit

import (
	"context"
	"errors"
	"fmt"
)

// Worker consumes audit events from a channel and persists them.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

// Run persists events until the inbox is closed, which is a clean shutdown,
// or ctx is done. On cancellation the events already buffered are still
// written before Run returns.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return errors.Join(ctx.Err(), w.flush(context.WithoutCancel(ctx)))
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.persist(ctx, event); err != nil {
				return err
			}
		}
	}
}

func (w *Worker) flush(ctx context.Context) error {
	for {
		select {
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.persist(ctx, event); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (w *Worker) persist(ctx context.Context, event Event) error {
	if err := w.store.Append(ctx, event); err != nil {
		return fmt.Errorf("append %s event: %w", event.Action, err)
	}
	return nil
}
