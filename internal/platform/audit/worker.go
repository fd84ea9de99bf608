package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the publisher and persists them.
// Persistence failures are logged and skipped; the trail is operational,
// not compliance-grade, so the worker never stops on a bad event.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"action", event.Action,
					"law_id", event.LawID,
					"error", err,
				)
			}
		}
	}
}
