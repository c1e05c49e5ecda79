package repository

import (
	"context"

	"attendance.service/internal/core/model"
)

// AttendanceRepository contract
type AttendanceRepository interface {
	Insert(ctx context.Context, record *model.AttendanceRecord) error
	Find(ctx context.Context, filter model.AttendanceFilter) ([]model.AttendanceRecord, error)
}

// DirectoryRepository contract
type DirectoryRepository interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	ListOffices(ctx context.Context) ([]model.Office, error)
}
