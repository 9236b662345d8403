package impresso

import (
	"sync"

	"github.com/ericfisherdev/agencysampler/internal/domain/model"
)

// TokenSource holds the bearer tokens for the run and tracks which one is
// active. Tokens are acquired once at startup; a rejected token mid-run swaps
// the active token to the secondary one or installs a freshly acquired pair.
// Access is mutex-guarded so a future concurrent caller cannot observe a
// half-swapped pair.
type TokenSource struct {
	mu           sync.RWMutex
	pair         model.TokenPair
	useSecondary bool
}

// NewTokenSource creates an empty TokenSource. Current returns "" until
// Replace installs a pair.
func NewTokenSource() *TokenSource {
	return &TokenSource{}
}

// Replace installs a fresh token pair and resets the active token to primary.
func (s *TokenSource) Replace(pair model.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.useSecondary = false
}

// Current returns the active bearer token, or "" before authentication.
func (s *TokenSource) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.useSecondary {
		return s.pair.Secondary
	}
	return s.pair.Primary
}

// Fallback switches the active token to the secondary one. It reports false
// when no secondary token exists or the secondary is already active.
func (s *TokenSource) Fallback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.useSecondary || s.pair.Secondary == "" {
		return false
	}
	s.useSecondary = true
	return true
}

// HasToken reports whether any token is currently held.
func (s *TokenSource) HasToken() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.Primary != "" || s.pair.Secondary != ""
}
