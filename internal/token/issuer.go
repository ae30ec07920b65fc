package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// valueBytes is the raw entropy per token value. 16 bytes keeps the value
// above the 128-bit unguessability floor; a v4 UUID would fall short at 122.
const valueBytes = 16

// Issuer mints session tokens and registers them in a Store.
type Issuer struct {
	store Store
	ttl   time.Duration
}

// NewIssuer creates an issuer with the given validity window.
func NewIssuer(store Store, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Issuer{store: store, ttl: ttl}
}

// Issue creates, persists, and returns a fresh token. The returned token
// carries ExpiresAt so callers can compute remaining validity client-side.
// The only failure mode is storage unavailability.
func (i *Issuer) Issue(ctx context.Context, info *SessionInfo) (Token, error) {
	value, err := newValue()
	if err != nil {
		return Token{}, fmt.Errorf("generate token value: %w", err)
	}
	now := time.Now().UTC()
	tok := Token{
		Value:     value,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.ttl),
		Session:   info,
	}
	if err := i.store.Put(ctx, tok); err != nil {
		return Token{}, fmt.Errorf("store token: %w", err)
	}
	return tok, nil
}

func newValue() (string, error) {
	buf := make([]byte, valueBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
