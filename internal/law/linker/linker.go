// Package linker attaches law records to compendium groupings. The
// association id is the deterministic composite "<compendiumId>-<lawId>",
// so the store's uniqueness constraint makes linking idempotent: retries
// and double-submissions converge on the same association.
package linker

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lexgate/internal/law/models"
	"lexgate/internal/platform/audit"
	"lexgate/internal/platform/middleware"
	"lexgate/internal/recordstore"
	"lexgate/pkg/faults"
	"lexgate/pkg/lawid"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 200 * time.Millisecond
)

// Linker creates compendium-law associations with bounded retry.
type Linker struct {
	store    recordstore.Store
	audit    *audit.Publisher
	logger   *slog.Logger
	attempts int
	backoff  time.Duration
}

// Option configures a Linker.
type Option func(*Linker)

// WithRetry overrides the attempt count and initial backoff.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(l *Linker) {
		if attempts > 0 {
			l.attempts = attempts
		}
		l.backoff = backoff
	}
}

// New builds a Linker. publisher may be nil.
func New(store recordstore.Store, publisher *audit.Publisher, logger *slog.Logger, opts ...Option) *Linker {
	l := &Linker{
		store:    store,
		audit:    publisher,
		logger:   logger,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Link associates a law with a compendium. Safe to call repeatedly for the
// same pair: the composite id maps every retry onto the same association.
// Store failures are retried with doubling backoff before surfacing as a
// link fault.
func (l *Linker) Link(ctx context.Context, compendiumID, lawID string) (models.Association, error) {
	if strings.TrimSpace(compendiumID) == "" {
		return models.Association{}, faults.New(faults.CodeValidation, "compendium id must not be empty")
	}
	if _, err := lawid.Parse(lawID); err != nil {
		return models.Association{}, err
	}

	var lastErr error
	backoff := l.backoff
	for attempt := 1; attempt <= l.attempts; attempt++ {
		assoc, err := l.store.CreateCompendiumLaw(ctx, compendiumID, lawID)
		if err == nil {
			if l.audit != nil {
				l.audit.Emit(audit.Event{
					Action:       audit.ActionLawLinked,
					LawID:        lawID,
					CompendiumID: compendiumID,
					OperatorID:   middleware.GetOperatorID(ctx),
					RequestID:    middleware.GetRequestID(ctx),
				})
			}
			return assoc, nil
		}
		lastErr = err
		l.logger.WarnContext(ctx, "link attempt failed",
			"compendium_id", compendiumID,
			"law_id", lawID,
			"attempt", attempt,
			"error", err,
		)
		if attempt == l.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return models.Association{}, faults.Wrap(ctx.Err(), faults.CodeLink, "link cancelled")
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return models.Association{}, faults.Wrap(lastErr, faults.CodeLink, "could not link law to compendium")
}
