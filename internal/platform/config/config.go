// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures everything the gateway needs at startup.
type Server struct {
	Addr string

	// RecordStoreURL is the base URL of the external Record Store.
	RecordStoreURL string
	// RecordStoreToken is the opaque bearer credential for the store.
	// Acquisition is a black box; we only thread the string through.
	RecordStoreToken   string
	RecordStoreTimeout time.Duration

	// BlobTimeout bounds a single full-text PUT.
	BlobTimeout time.Duration

	// JWTSigningKey verifies operator tokens on the ingestion endpoints.
	JWTSigningKey string

	// DebounceWindow is the resolver quiescence window.
	DebounceWindow time.Duration
	// SessionTTL is the implicit expiry of an upload session.
	SessionTTL time.Duration

	// RedisURL enables the lookup cache when set.
	RedisURL string
	// AuditDSN enables the postgres audit store when set.
	AuditDSN string

	LogLevel  string
	LogFormat string
}

// FromEnv reads LEXGATE_* environment variables, applying development
// defaults for anything unset.
func FromEnv() Server {
	return Server{
		Addr:               envOr("LEXGATE_ADDR", ":8080"),
		RecordStoreURL:     envOr("LEXGATE_RECORD_STORE_URL", "http://localhost:9081"),
		RecordStoreToken:   os.Getenv("LEXGATE_RECORD_STORE_TOKEN"),
		RecordStoreTimeout: envDuration("LEXGATE_RECORD_STORE_TIMEOUT", 10*time.Second),
		BlobTimeout:        envDuration("LEXGATE_BLOB_TIMEOUT", 60*time.Second),
		JWTSigningKey:      envOr("LEXGATE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		DebounceWindow:     envDuration("LEXGATE_DEBOUNCE_WINDOW", time.Second),
		SessionTTL:         envDuration("LEXGATE_SESSION_TTL", 15*time.Minute),
		RedisURL:           os.Getenv("LEXGATE_REDIS_URL"),
		AuditDSN:           os.Getenv("LEXGATE_AUDIT_DSN"),
		LogLevel:           envOr("LEXGATE_LOG_LEVEL", "info"),
		LogFormat:          envOr("LEXGATE_LOG_FORMAT", "json"),
	}
}

// LookupCacheTTL enforces retention for cached Record Store lookups.
var LookupCacheTTL = 5 * time.Minute

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
