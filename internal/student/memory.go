package student

import (
	"context"
	"sync"
)

// MemoryDirectory is a seeded in-memory Directory for dev mode and tests.
type MemoryDirectory struct {
	mu       sync.RWMutex
	students map[string]Student
}

// NewMemoryDirectory creates a directory holding the given students.
func NewMemoryDirectory(students ...Student) *MemoryDirectory {
	d := &MemoryDirectory{students: make(map[string]Student, len(students))}
	for _, s := range students {
		d.students[s.StudentID] = s
	}
	return d
}

// SeedDemo returns a directory preloaded with the demo roster.
func SeedDemo() *MemoryDirectory {
	return NewMemoryDirectory(
		Student{StudentID: "STU001", Name: "John Doe", Email: "john@example.com", Department: "Computer Science", Year: 2023, DeviceID: "device123"},
		Student{StudentID: "STU002", Name: "Jane Smith", Email: "jane@example.com", Department: "Information Technology", Year: 2023, DeviceID: "device456"},
	)
}

// Get returns a student by ID, nil when unknown.
func (d *MemoryDirectory) Get(_ context.Context, studentID string) (*Student, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.students[studentID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// NamesByIDs resolves display names for the given IDs.
func (d *MemoryDirectory) NamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if s, ok := d.students[id]; ok {
			names[id] = s.Name
		}
	}
	return names, nil
}
