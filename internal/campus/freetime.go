package campus

import (
	"context"
	"strings"
	"time"
)

var suggestedActivities = []string{
	"Study for upcoming exams",
	"Work on assignments",
	"Review previous lectures",
	"Practice coding problems",
	"Take a break and relax",
	"Work on personal projects",
}

var noClassActivities = suggestedActivities[:4]

// FreeTime is the free/busy answer for a student at a moment in time.
type FreeTime struct {
	IsFree              bool     `json:"isFree"`
	Message             string   `json:"message,omitempty"`
	NextClass           *Slot    `json:"nextClass,omitempty"`
	SuggestedActivities []string `json:"suggestedActivities"`
}

// FreeTimeAt computes whether the student is in class at now, and what comes
// next today. Slot times compare lexicographically as HH:MM.
func FreeTimeAt(ctx context.Context, sched Schedule, studentID string, now time.Time) (FreeTime, error) {
	day := now.Format("Monday")
	clock := now.Format("15:04")

	today, err := sched.DayFor(ctx, studentID, day)
	if err != nil {
		return FreeTime{}, err
	}
	if today == nil {
		return FreeTime{
			IsFree:              true,
			Message:             "No classes scheduled for today",
			SuggestedActivities: noClassActivities,
		}, nil
	}

	free := true
	var next *Slot
	for i, slot := range today.Slots {
		start, end, ok := splitSlotTime(slot.Time)
		if !ok {
			continue
		}
		if clock >= start && clock <= end {
			free = false
			break
		}
		if clock < start && next == nil {
			next = &today.Slots[i]
		}
	}

	return FreeTime{
		IsFree:              free,
		NextClass:           next,
		SuggestedActivities: suggestedActivities,
	}, nil
}

func splitSlotTime(s string) (start, end string, ok bool) {
	start, end, ok = strings.Cut(s, "-")
	return
}
