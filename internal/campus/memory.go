package campus

import "context"

// MemorySchedule serves seeded timetable and exam data. The roster is small
// and immutable after construction, so no locking is needed.
type MemorySchedule struct {
	timetable []DaySchedule
	exams     []Exam
}

// NewMemorySchedule creates a schedule from explicit data.
func NewMemorySchedule(timetable []DaySchedule, exams []Exam) *MemorySchedule {
	return &MemorySchedule{timetable: timetable, exams: exams}
}

// SeedDemo returns a schedule preloaded with the demo timetable and exams.
func SeedDemo() *MemorySchedule {
	return NewMemorySchedule(
		[]DaySchedule{
			{StudentID: "STU001", Day: "Monday", Slots: []Slot{
				{Time: "09:00-10:00", Subject: "Data Structures", Room: "A101", Instructor: "Dr. Smith", Type: "lecture"},
				{Time: "10:00-11:00", Subject: "Algorithms", Room: "A102", Instructor: "Prof. Johnson", Type: "lecture"},
				{Time: "11:00-12:00", Subject: "Database Systems", Room: "A103", Instructor: "Dr. Brown", Type: "lecture"},
				{Time: "14:00-15:00", Subject: "Web Development", Room: "A104", Instructor: "Ms. Davis", Type: "lab"},
			}},
			{StudentID: "STU001", Day: "Tuesday", Slots: []Slot{
				{Time: "09:00-10:00", Subject: "Operating Systems", Room: "B101", Instructor: "Dr. Wilson", Type: "lecture"},
				{Time: "10:00-11:00", Subject: "Computer Networks", Room: "B102", Instructor: "Prof. Miller", Type: "lecture"},
				{Time: "15:00-16:00", Subject: "Software Engineering", Room: "B103", Instructor: "Dr. Taylor", Type: "tutorial"},
			}},
			{StudentID: "STU002", Day: "Monday", Slots: []Slot{
				{Time: "09:00-10:00", Subject: "Programming Fundamentals", Room: "C101", Instructor: "Ms. Anderson", Type: "lecture"},
				{Time: "11:00-12:00", Subject: "Mathematics", Room: "C102", Instructor: "Dr. White", Type: "lecture"},
				{Time: "14:00-15:00", Subject: "Digital Logic", Room: "C103", Instructor: "Prof. Garcia", Type: "lab"},
			}},
		},
		[]Exam{
			{StudentID: "STU001", Subject: "Data Structures", Title: "Midterm Examination", Date: "2024-02-15", Time: "10:00",
				Duration: 120, Type: "midterm", Room: "Exam Hall A", TotalMarks: 100, Instructions: "Bring calculator and ID card"},
			{StudentID: "STU001", Subject: "Algorithms", Title: "Weekly Quiz", Date: "2024-02-20", Time: "14:00",
				Duration: 90, Type: "quiz", Room: "A102", TotalMarks: 50},
			{StudentID: "STU002", Subject: "Programming Fundamentals", Title: "Final Project Presentation", Date: "2024-02-18", Time: "09:00",
				Duration: 150, Type: "project", Room: "C101", TotalMarks: 100, Instructions: "Prepare 10-minute presentation"},
		},
	)
}

// Timetable returns all day schedules for a student.
func (s *MemorySchedule) Timetable(_ context.Context, studentID string) ([]DaySchedule, error) {
	var res []DaySchedule
	for _, d := range s.timetable {
		if d.StudentID == studentID {
			res = append(res, d)
		}
	}
	return res, nil
}

// DayFor returns a student's schedule for one weekday, nil when none.
func (s *MemorySchedule) DayFor(_ context.Context, studentID, day string) (*DaySchedule, error) {
	for _, d := range s.timetable {
		if d.StudentID == studentID && d.Day == day {
			sched := d
			return &sched, nil
		}
	}
	return nil, nil
}

// Exams returns a student's exam entries.
func (s *MemorySchedule) Exams(_ context.Context, studentID string) ([]Exam, error) {
	var res []Exam
	for _, e := range s.exams {
		if e.StudentID == studentID {
			res = append(res, e)
		}
	}
	return res, nil
}
