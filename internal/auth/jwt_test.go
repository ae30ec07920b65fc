package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-secret-at-least-32-chars"

func TestIssueParseRoundtrip(t *testing.T) {
	session, err := Issue("STU001", "John Doe", "qr-attendance", testKey, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	claims, err := Parse(session.Token, testKey, "qr-attendance")
	require.NoError(t, err)
	assert.Equal(t, "STU001", claims.StudentID)
	assert.Equal(t, "John Doe", claims.Name)
	assert.Equal(t, "STU001", claims.Subject)
}

func TestParseRejectsWrongKey(t *testing.T) {
	session, err := Issue("STU001", "John Doe", "qr-attendance", testKey, time.Hour)
	require.NoError(t, err)

	_, err = Parse(session.Token, "another-key-entirely-32-chars-xx", "qr-attendance")
	assert.Error(t, err)
}

func TestParseRejectsIssuerMismatch(t *testing.T) {
	session, err := Issue("STU001", "John Doe", "someone-else", testKey, time.Hour)
	require.NoError(t, err)

	_, err = Parse(session.Token, testKey, "qr-attendance")
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	session, err := Issue("STU001", "John Doe", "qr-attendance", testKey, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(session.Token, testKey, "qr-attendance")
	assert.Error(t, err)
}
