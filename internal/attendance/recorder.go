package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"qrattendance/internal/token"
)

// Recorder validates session tokens and commits attendance records. It holds
// no state of its own: the stores are the only shared mutable resource, and
// the uniqueness constraint on the attendance store is the only
// concurrency-control primitive, so any number of handlers can call Mark
// concurrently without coordination.
type Recorder struct {
	tokens  token.Store
	records Store
}

// NewRecorder wires a recorder to its stores.
func NewRecorder(tokens token.Store, records Store) *Recorder {
	return &Recorder{tokens: tokens, records: records}
}

// MarkInput is one redemption attempt.
type MarkInput struct {
	Token     string
	StudentID string
	DeviceID  string
	Location  *Location
}

// Mark transitions the (studentID, deviceID, token) triple from unmarked to
// marked, exactly once:
//
//  1. the token must be present and unexpired,
//  2. a pre-check rejects known duplicates cheaply,
//  3. the insert commits; if a concurrent insert of the same triple lands
//     first, the store's constraint violation comes back as
//     ErrDuplicateAttendance,
//  4. the token is flagged used, advisory only.
//
// Token validation and the used-flag update are not atomic with each other.
// That window is fine here: validity, not exclusivity, is what step 1 checks,
// since one displayed code serves a whole classroom. A single-redemption
// variant would need check-validity-and-consume as one conditional store op.
func (r *Recorder) Mark(ctx context.Context, in MarkInput) (Record, error) {
	if in.Token == "" {
		return Record{}, &ValidationError{Field: "token"}
	}
	if in.StudentID == "" {
		return Record{}, &ValidationError{Field: "studentId"}
	}
	if in.DeviceID == "" {
		return Record{}, &ValidationError{Field: "deviceId"}
	}

	tok, err := r.tokens.GetValid(ctx, in.Token)
	if errors.Is(err, token.ErrNotFound) {
		return Record{}, ErrTokenInvalidOrExpired
	}
	if err != nil {
		return Record{}, err
	}

	dup, err := r.records.Exists(ctx, in.StudentID, in.DeviceID, tok.Value)
	if err != nil {
		return Record{}, err
	}
	if dup {
		return Record{}, ErrDuplicateAttendance
	}

	now := time.Now().UTC()
	rec := Record{
		ID:           uuid.NewString(),
		StudentID:    in.StudentID,
		DeviceID:     in.DeviceID,
		Date:         now.Format("2006-01-02"),
		Time:         now.Format("15:04:05"),
		SessionToken: tok.Value,
		Status:       StatusPresent,
		Location:     in.Location,
		MarkedAt:     now,
	}
	if err := r.records.Insert(ctx, rec); err != nil {
		return Record{}, err
	}

	// Bookkeeping only; failure here must not undo a committed record.
	_ = r.tokens.Invalidate(ctx, tok.Value, in.StudentID)

	return rec, nil
}
