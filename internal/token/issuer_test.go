package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuerIssuesUniqueValues(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	issuer := NewIssuer(s, time.Minute)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok, err := issuer.Issue(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, tok.Value, valueBytes*2, "hex-encoded value length")
		_, dup := seen[tok.Value]
		require.False(t, dup, "token values must never repeat")
		seen[tok.Value] = struct{}{}
	}
}

func TestIssuerSetsValidityWindow(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	issuer := NewIssuer(s, 60*time.Second)

	before := time.Now().UTC()
	tok, err := issuer.Issue(context.Background(), nil)
	require.NoError(t, err)
	after := time.Now().UTC()

	assert.True(t, tok.ExpiresAt.After(tok.IssuedAt), "expiresAt must be after issuedAt")
	assert.Equal(t, 60*time.Second, tok.ExpiresAt.Sub(tok.IssuedAt))
	assert.False(t, tok.IssuedAt.Before(before) || tok.IssuedAt.After(after))

	// The token is registered and retrievable immediately.
	got, err := s.GetValid(context.Background(), tok.Value)
	require.NoError(t, err)
	assert.Equal(t, tok.Value, got.Value)
}

func TestIssuerCarriesSessionInfo(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	issuer := NewIssuer(s, time.Minute)

	info := &SessionInfo{Subject: "Algorithms", Room: "A102", Instructor: "Prof. Johnson"}
	tok, err := issuer.Issue(context.Background(), info)
	require.NoError(t, err)

	got, err := s.GetValid(context.Background(), tok.Value)
	require.NoError(t, err)
	require.NotNil(t, got.Session)
	assert.Equal(t, "Algorithms", got.Session.Subject)
	assert.Equal(t, "A102", got.Session.Room)
}

func TestIssuerDefaultTTL(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	issuer := NewIssuer(s, 0)

	tok, err := issuer.Issue(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, tok.ExpiresAt.Sub(tok.IssuedAt))
}
