package upsert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexgate/internal/platform/sentinel"
)

func TestSessionsIssueAndTake(t *testing.T) {
	s := NewSessions(time.Minute)

	issued := s.Issue("1.00001", "https://blobs.local/upload/abc", true)
	require.NotEmpty(t, issued.ID)
	assert.Equal(t, "1.00001", issued.LawID)
	assert.True(t, issued.HadBlob)

	taken, err := s.Take(issued.ID)
	require.NoError(t, err)
	assert.Equal(t, issued, taken)
}

func TestSessionsAreSingleUse(t *testing.T) {
	s := NewSessions(time.Minute)
	issued := s.Issue("1.00001", "https://blobs.local/upload/abc", false)

	_, err := s.Take(issued.ID)
	require.NoError(t, err)

	_, err = s.Take(issued.ID)
	assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
}

func TestSessionsUnknownID(t *testing.T) {
	s := NewSessions(time.Minute)
	_, err := s.Take("nope")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestSessionsExpire(t *testing.T) {
	s := NewSessions(time.Minute)
	issued := s.Issue("1.00001", "https://blobs.local/upload/abc", false)

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err := s.Take(issued.ID)
	assert.ErrorIs(t, err, sentinel.ErrExpired)
}

func TestSessionsEachIssueIsFresh(t *testing.T) {
	s := NewSessions(time.Minute)
	first := s.Issue("1.00001", "https://blobs.local/upload/a", false)
	second := s.Issue("1.00001", "https://blobs.local/upload/b", false)

	assert.NotEqual(t, first.ID, second.ID)

	// Consuming one leaves the other live.
	_, err := s.Take(first.ID)
	require.NoError(t, err)
	_, err = s.Take(second.ID)
	require.NoError(t, err)
}
