package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrattendance/internal/student"
)

func seedRecord(t *testing.T, s Store, studentID, deviceID, tokenValue, date, clock string) {
	t.Helper()
	err := s.Insert(context.Background(), Record{
		ID:           fmt.Sprintf("%s-%s-%s", studentID, deviceID, tokenValue),
		StudentID:    studentID,
		DeviceID:     deviceID,
		Date:         date,
		Time:         clock,
		SessionToken: tokenValue,
		Status:       StatusPresent,
		MarkedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestForStudentPercentage(t *testing.T) {
	s := NewMemoryStore()
	q := NewQuery(s, student.SeedDemo())
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		seedRecord(t, s, "STU001", "dev1", fmt.Sprintf("tok%d", i), fmt.Sprintf("2026-08-%02d", i+1), "09:00:00")
	}

	sum, err := q.ForStudent(ctx, "STU001", 0)
	require.NoError(t, err)
	assert.Equal(t, 20.0, sum.Percentage, "6 present days over the fixed 30-day denominator")
	assert.Equal(t, 30, sum.TotalDays)
	assert.Equal(t, 6, sum.PresentDays)
	assert.Len(t, sum.Records, 6)
}

func TestForStudentPercentageRounding(t *testing.T) {
	s := NewMemoryStore()
	q := NewQuery(s, student.SeedDemo())

	for i := 0; i < 7; i++ {
		seedRecord(t, s, "STU001", "dev1", fmt.Sprintf("tok%d", i), fmt.Sprintf("2026-08-%02d", i+1), "09:00:00")
	}

	sum, err := q.ForStudent(context.Background(), "STU001", 0)
	require.NoError(t, err)
	assert.Equal(t, 23.33, sum.Percentage)
}

func TestForStudentNoRecords(t *testing.T) {
	q := NewQuery(NewMemoryStore(), student.SeedDemo())

	sum, err := q.ForStudent(context.Background(), "STU001", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum.Percentage)
	assert.Equal(t, 0, sum.PresentDays)
	assert.NotNil(t, sum.Records, "records must serialize as [], not null")
}

func TestForStudentWindow(t *testing.T) {
	s := NewMemoryStore()
	q := NewQuery(s, student.SeedDemo())
	now := time.Now().UTC()

	seedRecord(t, s, "STU001", "dev1", "recent", now.AddDate(0, 0, -2).Format("2006-01-02"), "09:00:00")
	seedRecord(t, s, "STU001", "dev1", "ancient", now.AddDate(0, 0, -40).Format("2006-01-02"), "09:00:00")

	sum, err := q.ForStudent(context.Background(), "STU001", 7)
	require.NoError(t, err)
	require.Len(t, sum.Records, 1)
	assert.Equal(t, "recent", sum.Records[0].SessionToken)

	sum, err = q.ForStudent(context.Background(), "STU001", 0)
	require.NoError(t, err)
	assert.Len(t, sum.Records, 2, "windowDays 0 means all records")
}

func TestListLimitClamping(t *testing.T) {
	s := NewMemoryStore()
	q := NewQuery(s, student.SeedDemo())
	ctx := context.Background()

	for i := 0; i < 250; i++ {
		seedRecord(t, s, "STU001", "dev1", fmt.Sprintf("tok%d", i), "2026-08-15", fmt.Sprintf("%02d:%02d:00", i/60, i%60))
	}

	cases := []struct {
		limit, want int
	}{
		{0, 200},    // out of range, default
		{-3, 200},   // out of range, default
		{5000, 200}, // above cap, default
		{10, 10},
		{1000, 250},
	}
	for _, tc := range cases {
		got, err := q.List(ctx, ListFilter{Limit: tc.limit})
		require.NoError(t, err)
		assert.Len(t, got, tc.want, "limit=%d", tc.limit)
	}
}

func TestListSortedNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	q := NewQuery(s, student.SeedDemo())

	seedRecord(t, s, "STU001", "dev1", "a", "2026-08-14", "10:00:00")
	seedRecord(t, s, "STU001", "dev1", "b", "2026-08-15", "09:00:00")
	seedRecord(t, s, "STU001", "dev1", "c", "2026-08-15", "11:30:00")

	got, err := q.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].SessionToken)
	assert.Equal(t, "b", got[1].SessionToken)
	assert.Equal(t, "a", got[2].SessionToken)
}

func TestListFilters(t *testing.T) {
	s := NewMemoryStore()
	q := NewQuery(s, student.SeedDemo())
	ctx := context.Background()

	seedRecord(t, s, "STU001", "dev1", "a", "2026-08-10", "09:00:00")
	seedRecord(t, s, "STU001", "dev1", "b", "2026-08-15", "09:00:00")
	seedRecord(t, s, "STU002", "dev2", "c", "2026-08-15", "09:00:00")

	got, err := q.List(ctx, ListFilter{StudentID: "STU002"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].SessionToken)

	got, err = q.List(ctx, ListFilter{DateFrom: "2026-08-12"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = q.List(ctx, ListFilter{DateFrom: "2026-08-09", DateTo: "2026-08-12"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].SessionToken)
}

func TestListEnrichesStudentNames(t *testing.T) {
	s := NewMemoryStore()
	q := NewQuery(s, student.SeedDemo())

	seedRecord(t, s, "STU001", "dev1", "a", "2026-08-15", "09:00:00")
	seedRecord(t, s, "GHOST", "dev9", "b", "2026-08-15", "10:00:00")

	got, err := q.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	byStudent := map[string]*string{}
	for _, r := range got {
		byStudent[r.StudentID] = r.StudentName
	}
	require.NotNil(t, byStudent["STU001"])
	assert.Equal(t, "John Doe", *byStudent["STU001"])
	assert.Nil(t, byStudent["GHOST"], "unresolvable students carry a null name")
}
