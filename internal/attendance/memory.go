package attendance

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for dev mode and tests. It honors the
// same contract as Postgres: Insert is atomic per dedup triple.
type MemoryStore struct {
	mu      sync.Mutex
	byKey   map[string]struct{}
	records []Record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byKey: make(map[string]struct{})}
}

func tripleKey(studentID, deviceID, sessionToken string) string {
	return studentID + "\x00" + deviceID + "\x00" + sessionToken
}

// Insert adds a record or fails with ErrDuplicateAttendance.
func (s *MemoryStore) Insert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tripleKey(rec.StudentID, rec.DeviceID, rec.SessionToken)
	if _, ok := s.byKey[key]; ok {
		return ErrDuplicateAttendance
	}
	s.byKey[key] = struct{}{}
	s.records = append(s.records, rec)
	return nil
}

// Exists reports whether the triple already has a record.
func (s *MemoryStore) Exists(_ context.Context, studentID, deviceID, sessionToken string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byKey[tripleKey(studentID, deviceID, sessionToken)]
	return ok, nil
}

// ListForStudent returns the student's records newest first.
func (s *MemoryStore) ListForStudent(_ context.Context, studentID, since string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []Record
	for _, rec := range s.records {
		if rec.StudentID != studentID {
			continue
		}
		if since != "" && rec.Date < since {
			continue
		}
		res = append(res, rec)
	}
	sortNewestFirst(res)
	return res, nil
}

// List returns filtered records, newest first, capped at f.Limit.
func (s *MemoryStore) List(_ context.Context, f ListFilter) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []Record
	for _, rec := range s.records {
		if f.StudentID != "" && rec.StudentID != f.StudentID {
			continue
		}
		if f.DateFrom != "" && rec.Date < f.DateFrom {
			continue
		}
		if f.DateTo != "" && rec.Date > f.DateTo {
			continue
		}
		res = append(res, rec)
	}
	sortNewestFirst(res)
	if f.Limit > 0 && len(res) > f.Limit {
		res = res[:f.Limit]
	}
	return res, nil
}

// Lexicographic compare works because date and time are fixed-width
// zero-padded strings.
func sortNewestFirst(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Date != recs[j].Date {
			return recs[i].Date > recs[j].Date
		}
		return recs[i].Time > recs[j].Time
	})
}
