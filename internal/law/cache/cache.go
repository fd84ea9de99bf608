// Package cache is a read-through Redis cache for Record Store lookups.
// It exists to keep the debounced resolver cheap when operators flip
// between the same handful of identifiers; the store stays authoritative
// and entries expire on a short TTL.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"lexgate/internal/law/models"
	platformredis "lexgate/internal/platform/redis"
)

const keyPrefix = "law:lookup:"

// Cache wraps a Redis client. A nil *Cache is valid and disables caching,
// so wiring stays unconditional.
type Cache struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New builds a lookup cache. Returns nil when the client is nil (Redis not
// configured).
func New(client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

type entry struct {
	Record       models.LawRecord     `json:"record"`
	Associations []models.Association `json:"associations,omitempty"`
}

// Get returns a cached record and its associations, or ok=false on miss,
// disabled cache, or any Redis failure. Failures are logged and swallowed;
// the caller falls through to the store.
func (c *Cache) Get(ctx context.Context, id string) (*models.LawRecord, []models.Association, bool) {
	if c == nil {
		return nil, nil, false
	}
	raw, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "lookup cache get failed", "law_id", id, "error", err)
		}
		return nil, nil, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.WarnContext(ctx, "lookup cache entry corrupt", "law_id", id, "error", err)
		return nil, nil, false
	}
	record := e.Record
	return &record, e.Associations, true
}

// Save stores a lookup result under the configured TTL. Best-effort.
func (c *Cache) Save(ctx context.Context, record models.LawRecord, assocs []models.Association) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(entry{Record: record, Associations: assocs})
	if err != nil {
		c.logger.WarnContext(ctx, "lookup cache marshal failed", "law_id", record.ID, "error", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+record.ID, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "lookup cache save failed", "law_id", record.ID, "error", err)
	}
}

// Invalidate drops a cached entry. Called after every metadata upsert so a
// following lookup sees fresh fields.
func (c *Cache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		c.logger.WarnContext(ctx, "lookup cache invalidate failed", "law_id", id, "error", err)
	}
}
