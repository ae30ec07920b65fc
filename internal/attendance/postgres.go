package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// PostgresStore persists attendance records in Postgres. The unique
// constraint on (student_id, device_id, session_token) backs Insert's
// exactly-once guarantee.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store over an open connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert writes a record. A concurrent insert of the same triple loses the
// race inside Postgres and surfaces here as ErrDuplicateAttendance.
func (s *PostgresStore) Insert(ctx context.Context, rec Record) error {
	var lat, lng *float64
	if rec.Location != nil {
		lat, lng = &rec.Location.Latitude, &rec.Location.Longitude
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance (id, student_id, device_id, date, time, session_token, status, latitude, longitude, marked_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, rec.ID, rec.StudentID, rec.DeviceID, rec.Date, rec.Time, rec.SessionToken, rec.Status, lat, lng, rec.MarkedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateAttendance
		}
		return err
	}
	return nil
}

// Exists reports whether the triple already has a record.
func (s *PostgresStore) Exists(ctx context.Context, studentID, deviceID, sessionToken string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM attendance
		WHERE student_id = $1 AND device_id = $2 AND session_token = $3
	`, studentID, deviceID, sessionToken).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListForStudent returns the student's records newest first.
func (s *PostgresStore) ListForStudent(ctx context.Context, studentID, since string) ([]Record, error) {
	query := `
		SELECT id, student_id, device_id, date, time, session_token, status, latitude, longitude, marked_at
		FROM attendance WHERE student_id = $1`
	args := []any{studentID}
	if since != "" {
		query += ` AND date >= $2`
		args = append(args, since)
	}
	query += ` ORDER BY date DESC, time DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// List returns filtered records sorted by date then time, both descending.
func (s *PostgresStore) List(ctx context.Context, f ListFilter) ([]Record, error) {
	query := `
		SELECT id, student_id, device_id, date, time, session_token, status, latitude, longitude, marked_at
		FROM attendance`
	var clauses []string
	var args []any
	add := func(clause string, val any) {
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if f.StudentID != "" {
		add("student_id = $%d", f.StudentID)
	}
	if f.DateFrom != "" {
		add("date >= $%d", f.DateFrom)
	}
	if f.DateTo != "" {
		add("date <= $%d", f.DateTo)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY date DESC, time DESC LIMIT $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var res []Record
	for rows.Next() {
		var rec Record
		var lat, lng *float64
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.DeviceID, &rec.Date, &rec.Time,
			&rec.SessionToken, &rec.Status, &lat, &lng, &rec.MarkedAt); err != nil {
			return nil, err
		}
		if lat != nil && lng != nil {
			rec.Location = &Location{Latitude: *lat, Longitude: *lng}
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
