package token

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps tokens in a map and purges expired entries with a
// background sweeper. Intended for dev mode and tests; prod uses redis.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]Token
	stop   chan struct{}
	once   sync.Once
}

// NewMemoryStore creates a store sweeping expired tokens every sweepEvery.
// The sweeper runs until Close and is independent of request handling;
// GetValid checks expiry itself, so correctness never waits on a sweep.
func NewMemoryStore(sweepEvery time.Duration) *MemoryStore {
	if sweepEvery <= 0 {
		sweepEvery = 15 * time.Second
	}
	s := &MemoryStore{
		tokens: make(map[string]Token),
		stop:   make(chan struct{}),
	}
	go s.sweep(sweepEvery)
	return s
}

func (s *MemoryStore) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.mu.Lock()
			for value, tok := range s.tokens {
				if !now.Before(tok.ExpiresAt) {
					delete(s.tokens, value)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}

// Close stops the sweeper.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// Put registers a token.
func (s *MemoryStore) Put(_ context.Context, tok Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tok.Value] = tok
	return nil
}

// GetValid returns a live token or ErrNotFound.
func (s *MemoryStore) GetValid(_ context.Context, value string) (Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[value]
	if !ok || !time.Now().Before(tok.ExpiresAt) {
		return Token{}, ErrNotFound
	}
	return tok, nil
}

// Invalidate flags the token as used by usedBy. Missing tokens are a no-op:
// the flag is bookkeeping, not the dedup mechanism.
func (s *MemoryStore) Invalidate(_ context.Context, value, usedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[value]
	if !ok || tok.Used {
		return nil
	}
	now := time.Now().UTC()
	tok.Used = true
	tok.UsedBy = usedBy
	tok.UsedAt = &now
	s.tokens[value] = tok
	return nil
}
