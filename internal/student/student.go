// Package student is the read-only student directory consumed by the
// attendance core for login lookups and name enrichment. Directory CRUD is
// an external concern.
package student

import "context"

// Student is a directory entry.
type Student struct {
	StudentID  string `json:"studentId"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
	Year       int    `json:"year,omitempty"`
	DeviceID   string `json:"deviceId,omitempty"`
}

// Directory resolves students by ID.
type Directory interface {
	// Get returns the student or nil when unknown.
	Get(ctx context.Context, studentID string) (*Student, error)
	// NamesByIDs maps each known ID to its display name; unknown IDs are
	// simply absent from the result.
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}
