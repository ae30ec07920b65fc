// Package token implements the session-token side of the attendance
// protocol: issuing short-lived unguessable values and storing them with
// automatic expiry.
package token

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by GetValid for tokens that are missing or past
// their expiry. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("token not found or expired")

// SessionInfo carries optional descriptive metadata about the class a token
// was issued for. It never affects validity.
type SessionInfo struct {
	Subject    string `json:"subject,omitempty"`
	Room       string `json:"room,omitempty"`
	Instructor string `json:"instructor,omitempty"`
}

// Token is one display cycle of the rotating code.
//
// Used/UsedBy/UsedAt are bookkeeping set by the first successful redemption.
// Validity depends only on presence and ExpiresAt: a displayed code is meant
// to be scanned by many students during its window, so the used flag must not
// gate GetValid.
type Token struct {
	Value     string       `json:"value"`
	IssuedAt  time.Time    `json:"issuedAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Used      bool         `json:"used"`
	UsedBy    string       `json:"usedBy,omitempty"`
	UsedAt    *time.Time   `json:"usedAt,omitempty"`
	Session   *SessionInfo `json:"sessionInfo,omitempty"`
}

// Store is keyed token storage with automatic expiry.
type Store interface {
	// Put registers a freshly issued token.
	Put(ctx context.Context, tok Token) error
	// GetValid returns the token for value if it exists and has not expired;
	// otherwise ErrNotFound.
	GetValid(ctx context.Context, value string) (Token, error)
	// Invalidate records the first redemption against the token. It is
	// advisory: per-student dedup is enforced by the attendance store, and the
	// token stays redeemable by other students until it expires.
	Invalidate(ctx context.Context, value, usedBy string) error
}
