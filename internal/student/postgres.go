package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PostgresDirectory reads students from Postgres.
type PostgresDirectory struct {
	db *sql.DB
}

// NewPostgresDirectory creates a directory over an open pool.
func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

// Get returns a student by ID, nil when unknown.
func (d *PostgresDirectory) Get(ctx context.Context, studentID string) (*Student, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT student_id, name, COALESCE(email, ''), COALESCE(department, ''), COALESCE(year, 0), COALESCE(device_id, '')
		FROM students WHERE student_id = $1
	`, studentID)
	var s Student
	if err := row.Scan(&s.StudentID, &s.Name, &s.Email, &s.Department, &s.Year, &s.DeviceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// NamesByIDs resolves display names for the given IDs.
func (d *PostgresDirectory) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT student_id, name FROM students WHERE student_id IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
