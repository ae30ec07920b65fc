package attendance

import "context"

// ListFilter narrows the operator listing. Zero values mean no filter.
// Limit is clamped by Query, not here.
type ListFilter struct {
	StudentID string
	DateFrom  string
	DateTo    string
	Limit     int
}

// Store is durable attendance storage. Insert must enforce uniqueness of the
// (studentID, deviceID, sessionToken) triple atomically and return
// ErrDuplicateAttendance on collision; that constraint is the correctness
// boundary for duplicate prevention under concurrent redemption.
type Store interface {
	Insert(ctx context.Context, rec Record) error
	Exists(ctx context.Context, studentID, deviceID, sessionToken string) (bool, error)
	// ListForStudent returns the student's records, optionally restricted to
	// dates >= since (YYYY-MM-DD; empty means all), newest first.
	ListForStudent(ctx context.Context, studentID, since string) ([]Record, error)
	// List returns records matching the filter sorted by date descending then
	// time descending, at most f.Limit rows.
	List(ctx context.Context, f ListFilter) ([]Record, error)
}
