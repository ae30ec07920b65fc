// Package attendance implements the marking protocol: exactly-once recording
// of a student/device redemption against a displayed session token, plus the
// read-side queries operators use.
package attendance

import "time"

// Status of a record. Everything this core writes is present; absent and
// late exist for operator tooling that amends records elsewhere.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
)

// Location is an optional best-effort coordinate pair supplied by the device.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Record is one successful redemption. The (StudentID, DeviceID,
// SessionToken) triple is unique in storage; that constraint is the sole
// mechanism preventing a student from registering twice against the same
// displayed code.
type Record struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	DeviceID     string    `json:"deviceId"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Time         string    `json:"time"` // HH:MM:SS
	SessionToken string    `json:"sessionToken"`
	Status       Status    `json:"status"`
	Location     *Location `json:"location,omitempty"`
	MarkedAt     time.Time `json:"markedAt"`
}
