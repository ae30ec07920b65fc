package attendance

import (
	"context"
	"math"
	"time"

	"qrattendance/internal/student"
)

// assumedTotalDays is the fixed denominator for the percentage figure,
// standing in for "working days this month". It is a business rule inherited
// from the product, not a computed calendar value; do not replace it with
// one.
const assumedTotalDays = 30

const (
	defaultListLimit = 200
	maxListLimit     = 1000
)

// StudentSummary is the per-student read model.
type StudentSummary struct {
	Records     []Record `json:"records"`
	Percentage  float64  `json:"percentage"`
	TotalDays   int      `json:"totalDays"`
	PresentDays int      `json:"presentDays"`
}

// ListedRecord is a record enriched with the student's display name, null
// when the student is not in the directory.
type ListedRecord struct {
	Record
	StudentName *string `json:"studentName"`
}

// Query serves read-side aggregation over the attendance store.
type Query struct {
	records  Store
	students student.Directory
}

// NewQuery wires a query service.
func NewQuery(records Store, students student.Directory) *Query {
	return &Query{records: records, students: students}
}

// ForStudent returns the student's records and attendance percentage.
// windowDays > 0 restricts records to the last windowDays days; the
// percentage denominator stays at assumedTotalDays regardless.
func (q *Query) ForStudent(ctx context.Context, studentID string, windowDays int) (StudentSummary, error) {
	if studentID == "" {
		return StudentSummary{}, &ValidationError{Field: "studentId"}
	}
	var since string
	if windowDays > 0 {
		since = time.Now().UTC().AddDate(0, 0, -windowDays).Format("2006-01-02")
	}
	records, err := q.records.ListForStudent(ctx, studentID, since)
	if err != nil {
		return StudentSummary{}, err
	}
	present := 0
	for _, rec := range records {
		if rec.Status == StatusPresent {
			present++
		}
	}
	pct := float64(present) / float64(assumedTotalDays) * 100
	if records == nil {
		records = []Record{}
	}
	return StudentSummary{
		Records:     records,
		Percentage:  math.Round(pct*100) / 100,
		TotalDays:   assumedTotalDays,
		PresentDays: present,
	}, nil
}

// List returns filtered records for operators, each annotated with the
// student's name when resolvable. The limit clamps to [1,1000] and defaults
// to 200 when absent or out of range.
func (q *Query) List(ctx context.Context, f ListFilter) ([]ListedRecord, error) {
	if f.Limit < 1 || f.Limit > maxListLimit {
		f.Limit = defaultListLimit
	}
	records, err := q.records.List(ctx, f)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(records))
	var ids []string
	for _, rec := range records {
		if _, ok := seen[rec.StudentID]; !ok {
			seen[rec.StudentID] = struct{}{}
			ids = append(ids, rec.StudentID)
		}
	}
	names := map[string]string{}
	if len(ids) > 0 {
		names, err = q.students.NamesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]ListedRecord, 0, len(records))
	for _, rec := range records {
		lr := ListedRecord{Record: rec}
		if name, ok := names[rec.StudentID]; ok {
			lr.StudentName = &name
		}
		out = append(out, lr)
	}
	return out, nil
}
