// Package resolver answers "does this identifier already denote a law?"
// without hammering the Record Store while an operator is still typing.
//
// Submissions are debounced: each Submit re-arms a single timer, and only
// the last identifier submitted before the quiescence window elapses
// triggers a lookup. A monotonically increasing generation counter orders
// results — a lookup may still be in flight when a newer identifier is
// submitted, and its late result is discarded rather than clobbering
// fresher state. In-flight lookups are not cancelled, only ignored.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"lexgate/internal/law/cache"
	"lexgate/internal/law/models"
	"lexgate/internal/platform/sentinel"
	"lexgate/internal/recordstore"
	"lexgate/pkg/lawid"
)

// DefaultWindow is the reference quiescence window.
const DefaultWindow = time.Second

// Resolver is a single-owner debounced lookup. One instance serves one
// logical editing session; instances are not shared across operators.
type Resolver struct {
	store         recordstore.Store
	cache         *cache.Cache
	logger        *slog.Logger
	window        time.Duration
	lookupTimeout time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	latest models.Resolution

	updates chan models.Resolution
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithWindow overrides the quiescence window. Tests shrink it.
func WithWindow(d time.Duration) Option {
	return func(r *Resolver) {
		r.window = d
	}
}

// WithCache adds a read-through lookup cache. A nil cache is allowed.
func WithCache(c *cache.Cache) Option {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithLookupTimeout bounds a single underlying lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.lookupTimeout = d
	}
}

// New builds a Resolver around the given store.
func New(store recordstore.Store, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		store:         store,
		logger:        logger,
		window:        DefaultWindow,
		lookupTimeout: 10 * time.Second,
		updates:       make(chan models.Resolution, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit schedules a debounced lookup for id. The typed LawID keeps
// unvalidated identifiers out: callers must have parsed the input first.
// Each call supersedes any pending timer and any in-flight lookup.
func (r *Resolver) Submit(id lawid.LawID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	gen := r.gen
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.window, func() {
		r.fire(gen, id)
	})
}

// Stop cancels any pending timer. In-flight lookups finish on their own
// and their results are discarded by the generation check.
func (r *Resolver) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Snapshot returns the most recent caller-visible resolution.
func (r *Resolver) Snapshot() models.Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Updates delivers resolutions as they land. The channel holds only the
// newest value; slow readers see the latest state, not a backlog.
func (r *Resolver) Updates() <-chan models.Resolution {
	return r.updates
}

func (r *Resolver) fire(gen uint64, id lawid.LawID) {
	r.mu.Lock()
	if gen != r.gen {
		// Superseded between timer expiry and acquiring the lock.
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), r.lookupTimeout)
	defer cancel()
	res := r.ResolveNow(ctx, id)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		// A newer identifier was submitted while this lookup was in
		// flight; its result must not mutate caller-visible state.
		return
	}
	r.latest = res
	r.publish(res)
}

// ResolveNow performs one immediate lookup, bypassing the debounce. Used
// for explicit pre-population fetches. Lookup failures are recovered as
// "not exists": the caller cannot distinguish an absent record from an
// unreachable store, by design.
func (r *Resolver) ResolveNow(ctx context.Context, id lawid.LawID) models.Resolution {
	if record, assocs, ok := r.cache.Get(ctx, id.String()); ok {
		return models.Resolution{ID: id.String(), Exists: true, Record: record, Associations: assocs}
	}

	record, assocs, err := r.store.GetLaw(ctx, id.String())
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			r.logger.WarnContext(ctx, "existence lookup failed, treating as not found",
				"law_id", id.String(),
				"error", err,
			)
		}
		return models.Resolution{ID: id.String(), Exists: false}
	}

	r.cache.Save(ctx, *record, assocs)
	return models.Resolution{ID: id.String(), Exists: true, Record: record, Associations: assocs}
}

// publish replaces the pending update with the newest resolution.
func (r *Resolver) publish(res models.Resolution) {
	for {
		select {
		case r.updates <- res:
			return
		default:
			select {
			case <-r.updates:
			default:
			}
		}
	}
}
