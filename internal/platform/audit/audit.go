// Package audit records ingestion actions for operational visibility.
// Events are emitted from domain logic, queued on a channel, and persisted
// by a background worker. The trail is fail-open: a lost audit event never
// fails the ingestion that produced it.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Action identifies what happened.
type Action string

const (
	ActionLawUpserted        Action = "law_upserted"
	ActionBlobTransferred    Action = "blob_transferred"
	ActionBlobTransferFailed Action = "blob_transfer_failed"
	ActionBlobSkipped        Action = "blob_skipped"
	ActionLawLinked          Action = "law_linked"
	ActionBatchCompleted     Action = "batch_completed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time
	Action       Action
	LawID        string
	CompendiumID string
	OperatorID   string
	RequestID    string
	// Detail carries action-specific context, e.g. the integrity warning
	// for a failed blob transfer or batch counters.
	Detail string
	// Client describes the calling tool, derived from the User-Agent.
	Client string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher queues events for the background worker. Emission is
// best-effort: when the buffer is full the event is dropped and logged.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher creates a publisher with the given buffer size. The returned
// channel feeds a Worker.
func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Inbox exposes the event channel for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Emit queues an event without blocking the caller.
func (p *Publisher) Emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit buffer full, event dropped",
			"action", event.Action,
			"law_id", event.LawID,
		)
	}
}
