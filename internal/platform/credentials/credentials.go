// Package credentials abstracts bearer-token acquisition for the Record
// Store. The pipeline treats it as a black box returning an opaque string;
// providers are injected explicitly, never read from ambient state.
package credentials

import (
	"context"
	"errors"
)

// ErrNoCredential is returned when a provider has nothing to offer.
var ErrNoCredential = errors.New("no record store credential configured")

// Provider yields the bearer token for upstream calls.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// Static serves a fixed token, typically loaded from the environment.
// An empty token is allowed so local setups against unauthenticated mock
// upstreams work; callers skip the Authorization header in that case.
type Static struct {
	token string
}

func NewStatic(token string) *Static {
	return &Static{token: token}
}

func (s *Static) Token(_ context.Context) (string, error) {
	return s.token, nil
}
