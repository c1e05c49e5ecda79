package repository

import (
	"context"
	"database/sql"
	"fmt"

	"attendance.service/internal/core/model"
)

// PostgresDirectoryRepository reads the employees and offices tables.
type PostgresDirectoryRepository struct {
	DB *sql.DB
}

func NewPostgresDirectoryRepository(db *sql.DB) *PostgresDirectoryRepository {
	return &PostgresDirectoryRepository{DB: db}
}

// ListEmployees returns every employee, projected to id and name.
func (r *PostgresDirectoryRepository) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		var (
			e  model.Employee
			id int64
		)
		if err := rows.Scan(&id, &e.Name); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.ID = fmt.Sprint(id)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return employees, nil
}

// ListOffices returns every office with its reference coordinates, if any.
func (r *PostgresDirectoryRepository) ListOffices(ctx context.Context) ([]model.Office, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, latitude, longitude FROM offices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query offices: %w", err)
	}
	defer rows.Close()

	offices := []model.Office{}
	for rows.Next() {
		var (
			o        model.Office
			id       int64
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&id, &o.Name, &lat, &lng); err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		o.ID = fmt.Sprint(id)
		o.Latitude = floatPtr(lat)
		o.Longitude = floatPtr(lng)
		offices = append(offices, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read offices: %w", err)
	}
	return offices, nil
}
