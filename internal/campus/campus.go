// Package campus serves the mock timetable and exam listings that surround
// the attendance protocol. The data is seeded and read-only.
package campus

import "context"

// Slot is one scheduled class.
type Slot struct {
	Time       string `json:"time"` // HH:MM-HH:MM
	Subject    string `json:"subject"`
	Room       string `json:"room"`
	Instructor string `json:"instructor"`
	Type       string `json:"type"` // lecture, lab, tutorial, seminar
}

// DaySchedule is a student's slots for one weekday.
type DaySchedule struct {
	StudentID string `json:"studentId"`
	Day       string `json:"day"`
	Slots     []Slot `json:"slots"`
}

// Exam is an upcoming test entry.
type Exam struct {
	StudentID    string `json:"studentId"`
	Subject      string `json:"subject"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	Type         string `json:"type"`
	Room         string `json:"room"`
	TotalMarks   int    `json:"totalMarks"`
	Instructions string `json:"instructions,omitempty"`
}

// Schedule is read access to timetable and exam data.
type Schedule interface {
	Timetable(ctx context.Context, studentID string) ([]DaySchedule, error)
	DayFor(ctx context.Context, studentID, day string) (*DaySchedule, error)
	Exams(ctx context.Context, studentID string) ([]Exam, error)
}
