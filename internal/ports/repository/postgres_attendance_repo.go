package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"attendance.service/internal/core/model"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PostgresAttendanceRepository is the attendance store backed by PostgreSQL.
type PostgresAttendanceRepository struct {
	DB *sql.DB
}

// NewPostgresAttendanceRepository create new instance
func NewPostgresAttendanceRepository(db *sql.DB) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{DB: db}
}

// Insert stores one record and sets its generated id.
func (r *PostgresAttendanceRepository) Insert(ctx context.Context, record *model.AttendanceRecord) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee", record.Employee))

	query := `INSERT INTO attendance_records (employee, type, date, time, latitude, longitude, location, office, selfie_url)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var id int64
	err := r.DB.QueryRowContext(ctx, query,
		record.Employee, record.Type, record.Date, record.Time,
		nullFloat(record.Latitude), nullFloat(record.Longitude),
		record.Location, record.Office, record.SelfieURL,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert attendance record: %w", err)
	}

	record.ID = fmt.Sprint(id)
	return nil
}

// Find returns the records matching every non-empty filter field, oldest first.
func (r *PostgresAttendanceRepository) Find(ctx context.Context, filter model.AttendanceFilter) ([]model.AttendanceRecord, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Employee != "" {
		args = append(args, filter.Employee)
		conds = append(conds, fmt.Sprintf("employee = $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conds = append(conds, fmt.Sprintf("date = $%d", len(args)))
	}

	query := `SELECT id, employee, type, date, time, latitude, longitude, location, office, selfie_url
              FROM attendance_records`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	records := []model.AttendanceRecord{}
	for rows.Next() {
		var (
			rec      model.AttendanceRecord
			id       int64
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&id, &rec.Employee, &rec.Type, &rec.Date, &rec.Time,
			&lat, &lng, &rec.Location, &rec.Office, &rec.SelfieURL); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		rec.ID = fmt.Sprint(id)
		rec.Latitude = floatPtr(lat)
		rec.Longitude = floatPtr(lng)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
