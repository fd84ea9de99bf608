package upsert

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"lexgate/internal/law/models"
	"lexgate/internal/platform/sentinel"
)

// DefaultSessionTTL bounds how long an issued upload session stays usable.
const DefaultSessionTTL = 15 * time.Minute

type sessionEntry struct {
	session models.UploadSession
	used    bool
}

// Sessions is the in-memory upload session registry. Every metadata upsert
// issues a fresh session; each session is consumed at most once, by either
// a blob transfer or an explicit skip. Expired and used entries are never
// resurrected.
type Sessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*sessionEntry
}

// NewSessions creates a registry with the given TTL.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*sessionEntry),
	}
}

// Issue registers a fresh single-use session for an upload URL.
func (s *Sessions) Issue(lawID, uploadURL string, hadBlob bool) models.UploadSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()

	session := models.UploadSession{
		ID:        uuid.NewString(),
		UploadURL: uploadURL,
		LawID:     lawID,
		HadBlob:   hadBlob,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.entries[session.ID] = &sessionEntry{session: session}
	return session
}

// Take consumes a session exactly once. Later calls for the same id fail
// with ErrAlreadyUsed, expired sessions with ErrExpired, unknown ids with
// ErrNotFound.
func (s *Sessions) Take(id string) (models.UploadSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return models.UploadSession{}, fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
	}
	if entry.used {
		return models.UploadSession{}, fmt.Errorf("session %s: %w", id, sentinel.ErrAlreadyUsed)
	}
	if s.now().After(entry.session.ExpiresAt) {
		delete(s.entries, id)
		return models.UploadSession{}, fmt.Errorf("session %s: %w", id, sentinel.ErrExpired)
	}
	entry.used = true
	return entry.session, nil
}

// pruneLocked drops entries past their expiry. Callers hold s.mu.
func (s *Sessions) pruneLocked() {
	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.session.ExpiresAt) {
			delete(s.entries, id)
		}
	}
}
